package dto

// StartQuizRequest представляет запрос на начало прохождения
type StartQuizRequest struct {
	Practice bool `json:"practice"`
}

// SubmitAnswerRequest представляет отправку ответа.
// Answer используется в пошаговом режиме, Answers - в одностраничном
// (все ответы одной отправкой).
type SubmitAnswerRequest struct {
	Answer  string   `json:"answer"`
	Answers []string `json:"answers"`
}
