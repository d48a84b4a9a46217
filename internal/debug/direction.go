package debug

// Direction constants (matching common/constants.go)
const (
	dirForward = 0
	dirReverse = 1
)

// FormatDirection returns the human-readable name of a direction value.
func FormatDirection(dir int) string {
	switch dir {
	case dirForward:
		return "forward"
	case dirReverse:
		return "reverse"
	default:
		return "invalid"
	}
}
