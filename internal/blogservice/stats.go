package blogservice

type FavoriteBlogSummary struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// Stats is the blog list summary. The pointer fields are nil when there are no blogs.
type Stats struct {
	TotalLikes   int                  `json:"total_likes"`
	FavoriteBlog *FavoriteBlogSummary `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs         `json:"most_blogs"`
	MostLikes    *AuthorLikes         `json:"most_likes"`
}

func TotalLikes(blogs []Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes. Ties go to the earliest blog.
func FavoriteBlog(blogs []Blog) *FavoriteBlogSummary {
	if len(blogs) == 0 {
		return nil
	}

	fav := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > fav.Likes {
			fav = b
		}
	}

	return &FavoriteBlogSummary{Title: fav.Title, Author: fav.Author, Likes: fav.Likes}
}

// MostBlogs returns the author with the most blogs. Ties go to the author
// who reached the count first.
func MostBlogs(blogs []Blog) *AuthorBlogs {
	if len(blogs) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var best AuthorBlogs

	for _, b := range blogs {
		counts[b.Author]++
		if counts[b.Author] > best.Blogs {
			best = AuthorBlogs{Author: b.Author, Blogs: counts[b.Author]}
		}
	}

	return &best
}

// MostLikes returns the author whose blogs have the most likes in total. Ties
// go to the author who reached the total first.
func MostLikes(blogs []Blog) *AuthorLikes {
	if len(blogs) == 0 {
		return nil
	}

	likes := make(map[string]int)
	best := AuthorLikes{Likes: -1}

	for _, b := range blogs {
		likes[b.Author] += b.Likes
		if likes[b.Author] > best.Likes {
			best = AuthorLikes{Author: b.Author, Likes: likes[b.Author]}
		}
	}

	return &best
}
