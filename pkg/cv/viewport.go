package cv

// MobileMaxWidth is the widest viewport still treated as mobile.
const MobileMaxWidth = 768

// IsMobile classifies a reported viewport width. 0 means unknown and is
// treated as desktop.
func IsMobile(width int) bool {
	return width > 0 && width <= MobileMaxWidth
}
