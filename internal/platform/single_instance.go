package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"time"

	"github.com/hashicorp/go-hclog"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	maxMessageSize = 64 * 1024
	dialTimeout    = 2 * time.Second
	readTimeout    = 5 * time.Second
)

// InstanceGuard holds the single-instance lock. The lock is a localhost
// listener that later instances use to forward newline-delimited messages.
type InstanceGuard struct {
	listener net.Listener
	address  string
}

// AcquireSingleInstance attempts to bind a deterministic localhost port.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener, address: address}, nil
}

// Serve hands every message sent by another instance to handle. It blocks
// until the guard is released. Connections are read concurrently, so handle
// must be safe for concurrent use; messages from one connection keep their
// order.
func (guard *InstanceGuard) Serve(handle func(message []byte), logger hclog.Logger) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			logger.Warn("accept instance connection", "error", err)
			continue
		}
		go guard.read(conn, handle, logger)
	}
}

func (guard *InstanceGuard) read(conn net.Conn, handle func(message []byte), logger hclog.Logger) {
	defer conn.Close()
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		logger.Warn("set instance read deadline", "error", err)
		return
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxMessageSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		handle(append([]byte(nil), line...))
	}
	if err := scanner.Err(); err != nil {
		logger.Warn("read instance message", "error", err)
	}
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

// SendToRunning forwards messages to the instance holding the lock for
// appName, one per line.
func SendToRunning(appName string, messages ...[]byte) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), dialTimeout)
	if err != nil {
		return fmt.Errorf("connect to running instance: %w", err)
	}
	defer conn.Close()

	writer := bufio.NewWriter(conn)
	for _, message := range messages {
		if _, err := writer.Write(message); err != nil {
			return fmt.Errorf("send to running instance: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("send to running instance: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("send to running instance: %w", err)
	}
	return nil
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
