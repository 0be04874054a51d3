// Package luacheck compiles script bodies without running them.
package luacheck

import (
	"errors"
	"fmt"

	"github.com/Shopify/go-lua"
)

// ErrSyntax marks a body that does not compile as Lua 5.2.
var ErrSyntax = errors.New("lua syntax error")

// Check compiles src under the chunk name and reports the first syntax error.
// Nothing is executed. Luau-only syntax (compound assignment, type
// annotations, continue) fails here even though the game client accepts it.
func Check(name, src string) error {
	state := lua.NewState()
	if err := lua.LoadBuffer(state, src, "="+name, ""); err != nil {
		msg, ok := state.ToString(-1)
		if !ok || msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrSyntax, msg)
	}
	return nil
}
