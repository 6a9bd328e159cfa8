package specification

import "gorm.io/gorm"

// BetweenUsers matches every message exchanged between two users, in either
// direction. The pair is unordered: (a,b) and (b,a) produce the same set.
type BetweenUsers struct {
	UserA uint
	UserB uint
}

func (s BetweenUsers) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		s.UserA, s.UserB, s.UserB, s.UserA,
	)
}

// ByParticipant matches every message the user sent or received.
type ByParticipant struct {
	UserID uint
}

func (s ByParticipant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender_id = ? OR receiver_id = ?", s.UserID, s.UserID)
}
