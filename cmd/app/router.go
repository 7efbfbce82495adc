package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthCheckHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/api/blogs", app.listBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/api/blogs", app.authenticate(app.createBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/blogs/:id", app.showBlogHandler)
	router.HandlerFunc(http.MethodPatch, "/api/blogs/:id", app.authenticate(app.updateBlogLikesHandler))
	router.HandlerFunc(http.MethodDelete, "/api/blogs/:id", app.authenticate(app.deleteBlogHandler))
	router.HandlerFunc(http.MethodGet, "/api/stats", app.statsHandler)

	// user service
	router.HandlerFunc(http.MethodGet, "/api/users", app.listUsersHandler)
	router.HandlerFunc(http.MethodPost, "/api/users", app.createUserHandler)
	router.HandlerFunc(http.MethodGet, "/api/users/:id", app.showUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/login", app.loginHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}
