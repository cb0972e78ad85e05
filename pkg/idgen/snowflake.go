package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

// Init sets up the process-wide snowflake node. Call once at startup.
func Init(machineID int64) error {
	n, err := snowflake.NewNode(machineID)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// GenerateID returns a time-ordered unique int64. Falls back to node 1
// when Init was never called (tests, one-off tools).
func GenerateID() int64 {
	if node == nil {
		node, _ = snowflake.NewNode(1)
	}
	return node.Generate().Int64()
}

// NewTransferCode returns the shared batch key stamped on every item of
// one transfer batch.
func NewTransferCode() string {
	return fmt.Sprintf("TRF-%d", GenerateID())
}
