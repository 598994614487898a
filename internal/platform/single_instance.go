package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const raiseCommand = "raise"

// InstanceGuard holds the single-instance lock and listens for raise
// requests from instances that lost the race.
type InstanceGuard struct {
	listener net.Listener
	onRaise  func()
}

// AcquireSingleInstance binds a deterministic localhost port derived from
// the app name. If another instance holds the port, it is asked to bring its
// board to the front and ErrAlreadyRunning is returned.
func AcquireSingleInstance(appName string, onRaise func()) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		requestRaise(address)
		return nil, ErrAlreadyRunning
	}

	guard := &InstanceGuard{listener: listener, onRaise: onRaise}
	go guard.serve()
	return guard, nil
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

func (guard *InstanceGuard) serve() {
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(time.Second))
		line, _ := bufio.NewReader(conn).ReadString('\n')
		_ = conn.Close()
		if strings.TrimSpace(line) == raiseCommand && guard.onRaise != nil {
			guard.onRaise()
		}
	}
}

func requestRaise(address string) {
	conn, err := net.DialTimeout("tcp", address, time.Second)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintln(conn, raiseCommand)
	_ = conn.Close()
}

func instanceAddress(appName string) string {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	port := minPort + int(hash.Sum32()%uint32(maxPort-minPort+1))
	return fmt.Sprintf("127.0.0.1:%d", port)
}
