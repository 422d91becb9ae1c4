package entity

import "time"

// UserProfile is the read model of a marketplace member. InterestEmbedding is
// maintained by the profile-embedding pipeline and stored as a JSON array of
// floats; an empty value means the member has no interest signal yet.
type UserProfile struct {
	Id                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid              string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	Username          string    `gorm:"column:username;type:varchar(64);uniqueIndex;not null"`
	Nickname          string    `gorm:"column:nickname;type:varchar(64)"`
	Avatar            string    `gorm:"column:avatar;type:varchar(255)"`
	Headline          string    `gorm:"column:headline;type:varchar(200)"`
	InterestEmbedding string    `gorm:"column:interest_embedding;type:json"`
	Status            int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (UserProfile) TableName() string { return "user_profiles" }

// AuthorBrief is the subset of a profile attached to ranked content.
type AuthorBrief struct {
	Uuid     string
	Nickname string
	Avatar   string
	Headline string
}
