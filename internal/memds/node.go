package memds

// NodeId is a stable handle to a node slot in a node arena.
// Ids of removed nodes are recycled.
type NodeId int64

const nilNode NodeId = -1

func (id NodeId) IsNil() bool {
	return id == nilNode
}

type listNode struct {
	prev, next NodeId
	data       []byte
}
