// Package rewards — ledger.go решает, можно ли обменять очки на награду.
// Обе функции чистые: никакого состояния, баланс передаёт и хранит вызывающий.
package rewards

import "fmt"

// Evaluate проверяет, хватает ли баланса на награду.
//
// Примеры:
//
//	Evaluate(1560, cost=500)  → Eligible
//	Evaluate(1560, cost=1560) → Eligible (ровно хватает)
//	Evaluate(150, cost=200)   → Ineligible, Shortfall=50
//
// Отрицательный баланс или цена — баг выше по стеку, паникуем.
func Evaluate(balance int64, reward Reward) ClaimAttempt {
	mustBeValid(balance, reward)

	if balance >= reward.Cost {
		return ClaimAttempt{Eligible: true}
	}
	return ClaimAttempt{Shortfall: reward.Cost - balance}
}

// Claim возвращает новый баланс и итог.
// При нехватке очков баланс возвращается без изменений.
// Применить newBalance ровно один раз на подтверждённый обмен — задача вызывающего (Session).
func Claim(balance int64, reward Reward) (int64, Outcome) {
	attempt := Evaluate(balance, reward)
	if !attempt.Eligible {
		return balance, Ineligible(attempt.Shortfall)
	}
	return balance - reward.Cost, Success()
}

func mustBeValid(balance int64, reward Reward) {
	if balance < 0 {
		panic(fmt.Sprintf("rewards: отрицательный баланс %d", balance))
	}
	if reward.Cost < 0 {
		panic(fmt.Sprintf("rewards: награда %s с отрицательной ценой %d", reward.ID, reward.Cost))
	}
}
