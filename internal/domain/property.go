package domain

// PropertyType - тип недвижимости (совпадает с enum бэкенда)
type PropertyType int

const (
	PropertyApartment PropertyType = iota
	PropertyHouse
	PropertySummerCottage
	PropertyLand
	PropertyCommercial
	PropertyHotel
)

func (t PropertyType) Valid() bool {
	return t >= PropertyApartment && t <= PropertyHotel
}

// DealType - тип сделки (listingType)
type DealType int

const (
	DealForSale DealType = iota
	DealForRent
	DealDailyRent
	DealLeaseholdMortgage
)

func (d DealType) Valid() bool {
	return d >= DealForSale && d <= DealLeaseholdMortgage
}

// Значения селекторов, зависящих от типа сделки
var (
	// RentPeriodMonths - срок аренды, месяцы
	RentPeriodMonths = []int{1, 2, 3, 4, 5, 6, 9, 12, 15, 18}
	// OccupancyValues - вместимость посуточной аренды, 10 означает "10+"
	OccupancyValues = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	// LeasePeriodYears - срок залоговой аренды, годы
	LeasePeriodYears = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
)

// LeaseType - кто проживает в объекте при залоговой аренде
type LeaseType int

const (
	LeaseMortgagorLiving LeaseType = 1
	LeaseOwnerLiving     LeaseType = 2
)

// Locales, на которых ведутся описания
const (
	LocaleKa = "ka"
	LocaleEn = "en"
	LocaleRu = "ru"
)

// Description - описание объявления на трёх языках
type Description struct {
	Ka string `json:"ka" validate:"max=4000"`
	En string `json:"en" validate:"max=4000"`
	Ru string `json:"ru" validate:"max=4000"`
}

// Set - запись текста для языка; false для неизвестного языка
func (d *Description) Set(lang, text string) bool {
	switch lang {
	case LocaleKa:
		d.Ka = text
	case LocaleEn:
		d.En = text
	case LocaleRu:
		d.Ru = text
	default:
		return false
	}
	return true
}

// Option - элемент справочника {id, name}. Для групп флагов id - значение бита.
type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
