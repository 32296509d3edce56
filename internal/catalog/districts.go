package catalog

import "github.com/kailas-cloud/facetdex/internal/domain/choice"

// FederalDistricts expand to the larger cities of each district. The lists are fixed;
// a city missing here can still be selected by name.
var FederalDistricts = []choice.Group{
	{
		Key:   "central",
		Label: "Центральный федеральный округ",
		Members: []string{
			"Москва", "Белгород", "Брянск", "Владимир", "Воронеж", "Иваново", "Калуга",
			"Кострома", "Курск", "Липецк", "Орёл", "Рязань", "Смоленск", "Тамбов",
			"Тверь", "Тула", "Ярославль",
		},
	},
	{
		Key:   "northwestern",
		Label: "Северо-Западный федеральный округ",
		Members: []string{
			"Санкт-Петербург", "Архангельск", "Великий Новгород", "Вологда", "Калининград",
			"Мурманск", "Петрозаводск", "Псков", "Сыктывкар", "Череповец",
		},
	},
	{
		Key:   "southern",
		Label: "Южный федеральный округ",
		Members: []string{
			"Ростов-на-Дону", "Астрахань", "Волгоград", "Краснодар", "Майкоп",
			"Севастополь", "Симферополь", "Сочи", "Элиста",
		},
	},
	{
		Key:   "north_caucasian",
		Label: "Северо-Кавказский федеральный округ",
		Members: []string{
			"Пятигорск", "Владикавказ", "Грозный", "Магас", "Махачкала", "Нальчик",
			"Ставрополь", "Черкесск",
		},
	},
	{
		Key:   "volga",
		Label: "Приволжский федеральный округ",
		Members: []string{
			"Нижний Новгород", "Йошкар-Ола", "Ижевск", "Казань", "Киров", "Набережные Челны",
			"Оренбург", "Пенза", "Пермь", "Самара", "Саранск", "Саратов", "Тольятти",
			"Уфа", "Ульяновск", "Чебоксары",
		},
	},
	{
		Key:   "ural",
		Label: "Уральский федеральный округ",
		Members: []string{
			"Екатеринбург", "Курган", "Магнитогорск", "Салехард", "Сургут",
			"Тюмень", "Ханты-Мансийск", "Челябинск",
		},
	},
	{
		Key:   "siberian",
		Label: "Сибирский федеральный округ",
		Members: []string{
			"Новосибирск", "Абакан", "Барнаул", "Горно-Алтайск", "Иркутск", "Кемерово",
			"Красноярск", "Кызыл", "Новокузнецк", "Омск", "Томск",
		},
	},
	{
		Key:   "far_eastern",
		Label: "Дальневосточный федеральный округ",
		Members: []string{
			"Владивосток", "Анадырь", "Биробиджан", "Благовещенск", "Магадан",
			"Петропавловск-Камчатский", "Улан-Удэ", "Хабаровск", "Чита",
			"Южно-Сахалинск", "Якутск",
		},
	},
}
