// Package filter содержит клиентскую стадию фильтрации списка событий.
// Серверная стадия (площадка и спорт) выполняется параметрами запроса;
// здесь загруженный набор уточняется без обращения к сети.
package filter

import "sporttars/internal/client/domain/entities"

// Apply возвращает подмножество карточек, удовлетворяющее всем активным
// условиям. Порядок исходного набора сохраняется; выключенные флаги не
// накладывают ограничений.
func Apply(items []entities.ListingItem, criteria entities.FilterCriteria) []entities.ListingItem {
	out := make([]entities.ListingItem, 0, len(items))
	for _, item := range items {
		if matches(item, criteria) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item entities.ListingItem, criteria entities.FilterCriteria) bool {
	if criteria.Covered && !item.Covered {
		return false
	}
	if criteria.ChangingRoom && !item.ChangingRoom {
		return false
	}
	if criteria.Parking && !item.Parking {
		return false
	}

	if item.Price < criteria.MinPrice {
		return false
	}
	if criteria.MaxPrice > 0 && item.Price > criteria.MaxPrice {
		return false
	}

	return ageBandsOverlap(item, criteria)
}

// ageBandsOverlap проверяет пересечение допустимого возраста карточки с
// запрошенным диапазоном. Нулевая верхняя граница означает "без предела".
func ageBandsOverlap(item entities.ListingItem, criteria entities.FilterCriteria) bool {
	if criteria.MinAge == 0 && criteria.MaxAge == 0 {
		return true
	}
	if criteria.MaxAge > 0 && item.MinimumAge > criteria.MaxAge {
		return false
	}
	if item.MaximumAge > 0 && criteria.MinAge > item.MaximumAge {
		return false
	}
	return true
}
