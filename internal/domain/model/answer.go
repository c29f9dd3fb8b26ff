package model

import "time"

// Submission результат прохождения теста, передается в сервис результатов
type Submission struct {
	ID               string            `json:"id"`
	TestID           string            `json:"test_id"`
	StudentID        string            `json:"student_id"`
	Answers          map[string]string `json:"answers"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
	TimedOut         bool              `json:"timed_out"`
	SubmittedAt      time.Time         `json:"submitted_at"`
}

// Answer оцененный ответ на один вопрос
type Answer struct {
	QuestionID    string `json:"question_id"`
	QuestionText  string `json:"question_text"`
	Kind          Kind   `json:"kind"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}

// Result оцененная попытка
type Result struct {
	SubmissionID     string    `json:"submission_id"`
	TestID           string    `json:"test_id"`
	TestTitle        string    `json:"test_title"`
	StudentID        string    `json:"student_id"`
	Score            int       `json:"score"`
	CorrectCount     int       `json:"correct_count"`
	TotalQuestions   int       `json:"total_questions"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	TimedOut         bool      `json:"timed_out"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Answers          []Answer  `json:"answers"`
}

// TestSummary сводка по тесту для преподавателя
type TestSummary struct {
	TestID       string  `json:"test_id"`
	TestTitle    string  `json:"test_title"`
	AverageScore float64 `json:"average_score"`
	HighestScore int     `json:"highest_score"`
	LowestScore  int     `json:"lowest_score"`
	Participants int     `json:"participants"`
	PassRate     float64 `json:"pass_rate"`
}
