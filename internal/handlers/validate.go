package handlers

import (
	"mime"
	"net/http"
)

const maxFormMemory = 1 << 20

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// parseForm заполняет r.PostForm как для urlencoded, так и для multipart тела.
func parseForm(r *http.Request) error {
	if checkContentType(r, "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}
