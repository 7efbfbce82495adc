package main

import (
	"log/slog"
	"net/http"

	"github.com/sushihentaime/bloglist/internal/common"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// errorResponse is the single place where failures become HTTP responses.
// Anything that is not a *common.Error is a 500.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	e, ok := common.AsError(err)
	if !ok {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.logger.Info("request failed",
		slog.String("kind", e.Kind.String()),
		slog.String("error", e.Message),
		slog.String("method", r.Method),
		slog.String("url", r.URL.RequestURI()),
	)

	app.writeErrorResponse(w, r, app.statusFor(e.Kind), e.Message)
}

func (app *application) statusFor(kind common.ErrorKind) int {
	switch kind {
	case common.KindMalformedID, common.KindValidation, common.KindUniqueness:
		return http.StatusBadRequest
	case common.KindAuthenticationRequired, common.KindInvalidToken, common.KindUnknownUser, common.KindInvalidCredentials:
		return http.StatusUnauthorized
	case common.KindNotFound:
		return http.StatusNotFound
	case common.KindUnauthorized:
		if app.config.UnauthorizedStatus != 0 {
			return app.config.UnauthorizedStatus
		}
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Info("bad request", slog.String("error", err.Error()), slog.String("url", r.URL.RequestURI()))
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Info("unknown endpoint", slog.String("method", r.Method), slog.String("url", r.URL.RequestURI()))
	app.writeErrorResponse(w, r, http.StatusNotFound, "Unknown endpoint")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Info("method not allowed", slog.String("method", r.Method), slog.String("url", r.URL.RequestURI()))
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Info("rate limit exceeded", slog.String("method", r.Method), slog.String("url", r.URL.RequestURI()))
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
