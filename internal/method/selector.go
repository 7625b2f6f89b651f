package method

import "fmt"

// buttonXPath matches a button (or anything with role=button) by its visible
// label, the way the GUI toolkit renders mode-toggle controls.
func buttonXPath(label string) string {
	return fmt.Sprintf(`//button[normalize-space(.)=%q] | //*[@role="button"][normalize-space(.)=%q]`, label, label)
}

// textXPath matches any element whose own text content equals the label.
func textXPath(text string) string {
	return fmt.Sprintf(`//*[normalize-space(text())=%q]`, text)
}
