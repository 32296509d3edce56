package catalog

import "github.com/kailas-cloud/facetdex/internal/domain/choice"

// Value lists shared by several types. Each registry still declares its own attribute.
var (
	groupChoices = []choice.Choice{
		{Key: "supplier", Label: "Поставщик"},
		{Key: "repair", Label: "Ремонт"},
		{Key: "design", Label: "Дизайн"},
		{Key: "media", Label: "Медиа"},
	}

	segmentChoices = []choice.Choice{
		{Key: "horeca", Label: "HoReCa"},
		{Key: "business", Label: "Бизнес"},
		{Key: "comfort", Label: "Комфорт"},
		{Key: "premium", Label: "Премиум"},
		{Key: "medium", Label: "Средний"},
		{Key: "economy", Label: "Эконом"},
	}

	vatChoices = []choice.Choice{
		{Key: "yes", Label: "Да"},
		{Key: "no", Label: "Нет"},
	}

	businessFormChoices = []choice.Choice{
		{Key: "own_business", Label: "Собственный бизнес"},
		{Key: "franchise", Label: "Франшиза"},
	}

	magazineCardChoices = []choice.Choice{
		{Key: "hi_home", Label: "Hi Home"},
		{Key: "in_home", Label: "IN HOME"},
		{Key: "no", Label: "Нет"},
		{Key: "other", Label: "Другое"},
	}

	purposeChoices = []choice.Choice{
		{Key: "permanent_residence", Label: "Для постоянного проживания"},
		{Key: "for_rent", Label: "Для сдачи"},
		{Key: "commercial", Label: "Коммерческая недвижимость"},
		{Key: "horeca", Label: "HoReCa"},
	}

	areaChoices = labelled("до 10 м2", "до 40 м2", "до 80 м2", "дома")

	costChoices = labelled("До 1500 р", "до 2500р", "до 4000 р", "свыше 4000 р")

	experienceChoices = labelled("Новичок", "До 2 лет", "2-5 лет", "5-10 лет", "Свыше 10 лет")
)

// labelled builds choices whose stored key is the label itself.
func labelled(labels ...string) []choice.Choice {
	out := make([]choice.Choice, len(labels))
	for i, l := range labels {
		out[i] = choice.Choice{Key: l, Label: l}
	}
	return out
}

func cityAttribute(fields ...string) choice.Attribute {
	return choice.MustAttribute("city",
		choice.Fields(fields...),
		choice.Combine(choice.CombineAnd),
		choice.Derived(),
		choice.Groups(FederalDistricts...),
	)
}

func groupAttribute() choice.Attribute {
	return choice.MustAttribute("group", choice.Fields("group"), choice.Choices(groupChoices...))
}

func segmentAttribute() choice.Attribute {
	return choice.MustAttribute("segment",
		choice.Fields("segments"), choice.MultiValued(), choice.Choices(segmentChoices...))
}

func vatAttribute() choice.Attribute {
	return choice.MustAttribute("vat_payment", choice.Fields("vat_payment"), choice.Choices(vatChoices...))
}

func businessFormAttribute() choice.Attribute {
	return choice.MustAttribute("business_form",
		choice.Fields("business_form"), choice.Choices(businessFormChoices...))
}

func magazineCardsAttribute() choice.Attribute {
	return choice.MustAttribute("magazine_cards",
		choice.Fields("magazine_cards"), choice.MultiValued(), choice.Choices(magazineCardChoices...))
}

func experienceAttribute() choice.Attribute {
	return choice.MustAttribute("experience",
		choice.Combine(choice.CombineText),
		choice.TextFields("welcome_message", "additional_info"),
		choice.Choices(experienceChoices...),
	)
}
