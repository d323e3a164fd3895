package ast

type (
	ComponentID uint32
	ItemID      uint32
	StmtID      uint32
	ExprID      uint32
	DeclID      uint32
	PayloadID   uint32
)

const (
	NoComponentID ComponentID = 0
	NoItemID      ItemID      = 0
	NoStmtID      StmtID      = 0
	NoExprID      ExprID      = 0
	NoDeclID      DeclID      = 0
	NoPayloadID   PayloadID   = 0
)

func (id ComponentID) IsValid() bool { return id != NoComponentID }
func (id ItemID) IsValid() bool      { return id != NoItemID }
func (id StmtID) IsValid() bool      { return id != NoStmtID }
func (id ExprID) IsValid() bool      { return id != NoExprID }
func (id DeclID) IsValid() bool      { return id != NoDeclID }
func (id PayloadID) IsValid() bool   { return id != NoPayloadID }
