package blogservice

import (
	"math"

	"github.com/sushihentaime/bloglist/internal/common"
)

// MaxLikes matches the INTEGER likes column.
const MaxLikes = math.MaxInt32

func validateBlog(v *common.Validator, req *CreateBlogRequest) {
	v.Check(req.Title != "", "title", "Title required")
	v.Check(req.Author != "", "author", "Author required")
	v.Check(req.URL != "", "url", "Url required")
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "Likes must be non-negative")
	v.Check(likes <= MaxLikes, "likes", "Likes must not be more than 2147483647")
}
