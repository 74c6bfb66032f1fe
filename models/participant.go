package models

// Participant holds the parent and player details collected before submission.
type Participant struct {
	ParentName string `bson:"parentName" json:"parentName" validate:"required"`
	Mobile     string `bson:"mobile" json:"mobile" validate:"required"`
	PlayerName string `bson:"playerName" json:"playerName" validate:"required"`
	Age        string `bson:"age" json:"age" validate:"required"`
}
