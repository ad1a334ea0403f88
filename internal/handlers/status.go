package handlers

import (
	"net/http"

	"dumptrac/pkg/utils"
)

// StatusResponse is the body of the root and cors-test endpoints
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Root answers GET /
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, StatusResponse{Status: "ok", Message: "dumpTrac API"})
	}
}

// CORSTest lets a frontend check that Access-Control-Allow-Origin comes back.
// GET /cors-test
func CORSTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.Success(w, StatusResponse{Status: "ok", Message: "CORS is configured correctly"})
	}
}

// Health answers GET /health with a plain OK
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}
}
