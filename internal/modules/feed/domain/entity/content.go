package entity

import "time"

// Content types ranked by the feed.
const (
	ContentTypePost = "post"
	ContentTypeJob  = "job"
)

type Post struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid      string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	AuthorId  string    `gorm:"column:author_id;type:char(36);index;not null"`
	Title     string    `gorm:"column:title;type:varchar(200);not null"`
	Summary   string    `gorm:"column:summary;type:varchar(500)"`
	Content   string    `gorm:"column:content;type:mediumtext"`
	Status    int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (Post) TableName() string { return "posts" }

type JobPosting struct {
	Id          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Uuid        string    `gorm:"column:uuid;type:char(36);uniqueIndex;not null"`
	AuthorId    string    `gorm:"column:author_id;type:char(36);index;not null"`
	Title       string    `gorm:"column:title;type:varchar(200);not null"`
	CompanyName string    `gorm:"column:company_name;type:varchar(120)"`
	Location    string    `gorm:"column:location;type:varchar(120)"`
	Summary     string    `gorm:"column:summary;type:varchar(500)"`
	Description string    `gorm:"column:description;type:mediumtext"`
	Status      int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;type:datetime;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:datetime;not null"`
}

func (JobPosting) TableName() string { return "job_postings" }

// Vote rows are written by the voting service; the feed only reads them to
// attach the "voted by caller" flag.
type Vote struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserId    string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex:uniq_vote_user_post"`
	PostId    string    `gorm:"column:post_id;type:char(36);not null;uniqueIndex:uniq_vote_user_post"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (Vote) TableName() string { return "votes" }

// JobApplication rows are written by the application service; the feed only
// reads them to attach the "applied by caller" flag.
type JobApplication struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserId    string    `gorm:"column:user_id;type:char(36);not null;uniqueIndex:uniq_application_user_job"`
	JobId     string    `gorm:"column:job_id;type:char(36);not null;uniqueIndex:uniq_application_user_job"`
	Status    int8      `gorm:"column:status;type:tinyint;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;not null"`
}

func (JobApplication) TableName() string { return "job_applications" }
