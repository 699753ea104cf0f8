package models

// Follow is a user subscribing to an author's recipes. Self-follows are
// rejected before this row is ever written.
type Follow struct {
	BaseModel

	UserID   uint `gorm:"not null;uniqueIndex:idx_follow_user_author"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follow_user_author"`

	// Relationships
	User   User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
