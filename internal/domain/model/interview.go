package model

import "time"

// InterviewSpec describes the mock interview a user asked for.
type InterviewSpec struct {
	Role      string // e.g. "Backend Engineer"
	Seniority string // e.g. "junior", "senior"
	TechStack string // comma-separated, free text
	Questions int    // how many questions to generate
}

// Question is a single generated interview question.
type Question struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// AnswerReview is the model's feedback for one answered question.
type AnswerReview struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Feedback  string    `json:"feedback"`
	Rating    int       `json:"rating"` // out of 10
	CreatedAt time.Time `json:"created_at"`
}
