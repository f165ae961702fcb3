package delivery

import (
	"github.com/Ibere22/Quiz-Website-sub001/internal/domain/entity"
)

// Grade проверяет весь набор ответов и возвращает количество правильных
// и итоговый балл 0-100. Функция чистая: никаких обращений к хранилищу.
//
// answers сопоставляется questions по индексу; недостающие ответы считаются
// пустой строкой и никогда не засчитываются. Частичных баллов и весов нет:
// score = correct / total * 100.
func Grade(questions []entity.Question, answers []string) (correct int, score float64) {
	for i := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		if questions[i].CheckAnswer(answer) {
			correct++
		}
	}
	if len(questions) > 0 {
		score = float64(correct) / float64(len(questions)) * 100.0
	}
	return correct, score
}
