package models

// TermsRowID pins the terms table to its single logical row
const TermsRowID = 1

// Terms represents the singleton terms-and-conditions record. It is
// seeded by migration and only ever updated.
type Terms struct {
	ID      int    `json:"id" db:"id"`
	Content string `json:"content" db:"content"`
}
