//go:build !unix

package termpix

import "fmt"

// detectCellSizeIOCTL is a stub for non-Unix platforms.
func detectCellSizeIOCTL() (pixelW, pixelH int, err error) {
	return 0, 0, fmt.Errorf("TIOCGWINSZ not available on this platform")
}
