package method

import (
	"github.com/paulstansifer/number-loom/internal/browser/chrome"
)

// Method binds the step primitives to a single page.
type Method struct {
	page *chrome.Page
}

func NewMethod(page *chrome.Page) *Method {
	return &Method{
		page: page,
	}
}
