package httpx

import (
	"net/http"
	"strconv"

	"github.com/openlibms/libms/internal/domain/model"
)

// pageOptionsFromRequest reads keyword/page/size query parameters.
// Missing or malformed numbers fall back to zero and are clamped by Normalized.
func pageOptionsFromRequest(r *http.Request) model.PageOptions {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return model.PageOptions{
		Keyword: q.Get("keyword"),
		Page:    page,
		Size:    size,
	}.Normalized()
}
