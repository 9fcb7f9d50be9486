package reference

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

// Generator issues unique human-readable reference strings for sales.
// Snowflake ids are monotonic per node, so references sort by creation time.
type Generator struct {
	node *snowflake.Node
}

func NewGenerator() *Generator {
	nodeID := int64(1)
	if v := os.Getenv("NODE_ID"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = parsed
		}
	}

	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		log.Fatal("Failed to init reference generator: ", err)
	}
	return &Generator{node: node}
}

// SaleReference returns a fresh reference like SALE-1755017991234567890.
func (g *Generator) SaleReference() string {
	return fmt.Sprintf("SALE-%d", g.node.Generate().Int64())
}
