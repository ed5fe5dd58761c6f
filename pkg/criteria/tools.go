//go:build tools

package criteria

import (
	_ "github.com/dmarkham/enumer"
)
