package entities

import (
	"errors"
	"time"
)

// Ошибки валидации черновика события.
var (
	ErrEventLocationRequired = errors.New("event location is required")
	ErrEventSportRequired    = errors.New("event sport is required")
	ErrEventTimeOrder        = errors.New("event must start before it ends")
	ErrEventAgeBounds        = errors.New("event age limits must be an increasing range between 6 and 100")
)

// Поля черновика события в карте ошибок.
const (
	FieldEventLocation Field = "locationId"
	FieldEventSport    Field = "sportId"
	FieldEventTimes    Field = "timeWindow"
	FieldEventAges     Field = "ageRange"
)

// EventDraft — черновик создаваемого события. Создается при открытии формы,
// отправляется как multipart-запрос и сбрасывается при успехе.
type EventDraft struct {
	LocationID int64
	SportID    int64
	StartTime  time.Time
	EndTime    time.Time
	SkillLevel string
	MinimumAge int
	MaximumAge int
}

// ListingItem — загруженная карточка результата поиска (событие или площадка).
// Коллекция карточек неизменяема в пределах одной загрузки и целиком
// заменяется при каждом новом запросе.
type ListingItem struct {
	ID           int64
	Location     string
	Sport        string
	StartTime    time.Time
	EndTime      time.Time
	Capacity     int
	Occupied     int
	Covered      bool
	ChangingRoom bool
	Parking      bool
	Price        float64
	MinimumAge   int
	MaximumAge   int
	Description  string
	ImageURL     string
}

// FilterCriteria — активные фильтры списка. Location и Sport выбираются на
// сервере (путь запроса), остальные условия уточняют результат на клиенте.
type FilterCriteria struct {
	Location     string
	Sport        string
	Covered      bool
	ChangingRoom bool
	Parking      bool
	MinPrice     float64
	MaxPrice     float64 // 0 = без верхней границы
	MinAge       int
	MaxAge       int // 0 = без верхней границы
}
