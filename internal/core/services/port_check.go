package services

import (
	"fmt"
	"net"

	"github.com/taskwise/todoist-cli/internal/core/domain"
)

// CheckPortAvailable verifies the fixed callback port can be bound
// before the browser is opened. The registered redirect URI pins the
// port, so a busy port means the automatic flow cannot work at all.
func CheckPortAvailable(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: port %d", domain.ErrPortInUse, port)
	}
	listener.Close()
	return nil
}
