package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
	err  error
)

// Init initializes the Snowflake node with the given node ID. Only the first call has effect.
func Init(nodeID int64) error {
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered unique ID, used to correlate the logs of one request.
// Init(0) is applied implicitly if the caller never initialised the node.
func New() int64 {
	if err := Init(0); err != nil {
		return 0
	}
	return node.Generate().Int64()
}
