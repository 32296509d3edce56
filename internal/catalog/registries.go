// Package catalog declares the static facet registries of the four questionnaire types.
package catalog

import (
	"fmt"

	"github.com/kailas-cloud/facetdex/internal/domain"
	"github.com/kailas-cloud/facetdex/internal/domain/choice"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
)

var registries = map[entity.Type]*choice.Registry{
	entity.Designer: designer(),
	entity.Repair:   repair(),
	entity.Supplier: supplier(),
	entity.Media:    media(),
}

// Registry returns the registry of a type.
func Registry(t entity.Type) (*choice.Registry, error) {
	r, ok := registries[t]
	if !ok {
		return nil, fmt.Errorf("%q: %w", t, domain.ErrUnknownEntityType)
	}
	return r, nil
}

// MustRegistry is Registry for callers holding an already parsed type.
func MustRegistry(t entity.Type) *choice.Registry {
	r, err := Registry(t)
	if err != nil {
		panic(err)
	}
	return r
}

func designer() *choice.Registry {
	return choice.MustRegistry(entity.Designer, []string{"full_name", "full_name_en"},
		groupAttribute(),
		cityAttribute("city", "work_cities"),
		segmentAttribute(),
		choice.MustAttribute("category",
			choice.Fields("categories"), choice.MultiValued(),
			choice.Choices(
				choice.Choice{Key: "residential_designer", Label: "Дизайнер жилых помещений"},
				choice.Choice{Key: "commercial_designer", Label: "Дизайнер коммерческой недвижимости"},
				choice.Choice{Key: "decorator", Label: "Декоратор"},
				choice.Choice{Key: "home_stager", Label: "Хоумстейджер"},
				choice.Choice{Key: "architect", Label: "Архитектор"},
				choice.Choice{Key: "landscape_designer", Label: "Ландшафтный дизайнер"},
				choice.Choice{Key: "light_designer", Label: "Светодизайнер"},
			),
		),
		choice.MustAttribute("service",
			choice.Fields("services"), choice.MultiValued(),
			choice.Choices(
				choice.Choice{Key: "author_supervision", Label: "Авторский надзор"},
				choice.Choice{Key: "architecture", Label: "Архитектура"},
				choice.Choice{Key: "decorator", Label: "Декоратор"},
				choice.Choice{Key: "designer_horika", Label: "Направление HoReCa"},
				choice.Choice{Key: "residential_designer", Label: "Дизайнер жилой недвижимости"},
				choice.Choice{Key: "commercial_designer", Label: "Дизайнер коммерческой недвижимости"},
				choice.Choice{Key: "completing", Label: "Комплектация"},
				choice.Choice{Key: "landscape_design", Label: "Ландшафтный дизайн"},
				choice.Choice{Key: "design", Label: "Проектирование"},
				choice.Choice{Key: "light_designer", Label: "Светодизайнер"},
				choice.Choice{Key: "home_stager", Label: "Хоумстейджер"},
			),
		),
		// property_purpose narrows the services list to the two property kinds.
		choice.MustAttribute("property_purpose",
			choice.Fields("services"), choice.MultiValued(),
			choice.Choices(
				choice.Choice{Key: "residential_designer", Label: "Жилая недвижимость"},
				choice.Choice{Key: "commercial_designer", Label: "Коммерческая недвижимость"},
			),
		),
		choice.MustAttribute("purpose_of_property",
			choice.Fields("purpose_of_property"), choice.MultiValued(), choice.Choices(purposeChoices...)),
		choice.MustAttribute("object_area",
			choice.Combine(choice.CombineText),
			choice.Fields("area_of_object"), choice.MultiValued(),
			choice.TextFields("service_packages_description"),
			choice.Choices(areaChoices...),
		),
		choice.MustAttribute("cost_per_sqm",
			choice.Combine(choice.CombineText),
			choice.Fields("cost_per_m2"),
			choice.TextFields("service_packages_description"),
			choice.Choices(costChoices...),
		),
		choice.MustAttribute("experience",
			choice.Combine(choice.CombineText),
			choice.Fields("experience"),
			choice.TextFields("welcome_message", "additional_info"),
			choice.Choices(experienceChoices...),
		),
		choice.MustAttribute("work_type",
			choice.Fields("work_type"),
			choice.Choices(
				choice.Choice{Key: "own_name", Label: "Под собственным именем"},
				choice.Choice{Key: "studio", Label: "В студии"},
			),
		),
		vatAttribute(),
	)
}

func repair() *choice.Registry {
	return choice.MustRegistry(entity.Repair, []string{"full_name", "brand_name"},
		groupAttribute(),
		cityAttribute("representative_cities"),
		segmentAttribute(),
		choice.MustAttribute("category",
			choice.Combine(choice.CombineHeuristic),
			choice.Fields("categories"), choice.MultiValued(),
			choice.TextFields("work_list"),
			choice.Choices(
				choice.Choice{Key: "repair_team", Label: "Ремонтная бригада"},
				choice.Choice{Key: "contractor", Label: "Подрядчик"},
				choice.Choice{Key: "finishing", Label: "Отделочные работы"},
				choice.Choice{Key: "electrical", Label: "Электромонтаж"},
				choice.Choice{Key: "plumbing", Label: "Сантехника"},
				choice.Choice{Key: "other", Label: "Другое"},
			),
			choice.Keywords("repair_team", "бригад", "ремонт под ключ", "ремонт квартир"),
			choice.Keywords("contractor", "подряд", "генподряд"),
			choice.Keywords("finishing", "отделк", "отделочн", "штукатур", "малярн", "плиточн"),
			choice.Keywords("electrical", "электромонтаж", "электрик", "проводк"),
			choice.Keywords("plumbing", "сантехн", "водоснабж", "канализац", "отоплен"),
		),
		choice.MustAttribute("property_purpose",
			choice.Combine(choice.CombineText),
			choice.TextFields("work_list"),
			choice.Choices(purposeChoices...),
		),
		choice.MustAttribute("object_area",
			choice.Combine(choice.CombineText),
			choice.TextFields("project_timelines"),
			choice.Choices(areaChoices...),
		),
		choice.MustAttribute("cost_per_sqm",
			choice.Combine(choice.CombineText),
			choice.TextFields("work_format", "guarantees"),
			choice.Choices(costChoices...),
		),
		experienceAttribute(),
		businessFormAttribute(),
		choice.MustAttribute("speed_of_execution",
			choice.Fields("speed_of_execution"), choice.MultiValued(),
			choice.Choices(
				choice.Choice{Key: "advance_booking", Label: "Предварительная запись"},
				choice.Choice{Key: "quick_start", Label: "Быстрый старт"},
				choice.Choice{Key: choice.NotImportant, Label: "Не важно"},
			),
		),
		magazineCardsAttribute(),
		vatAttribute(),
	)
}

func supplier() *choice.Registry {
	attrs := []choice.Attribute{
		groupAttribute(),
		cityAttribute("representative_cities"),
		segmentAttribute(),
		choice.MustAttribute("category",
			choice.Combine(choice.CombineHeuristic),
			choice.Fields("categories"), choice.MultiValued(),
			choice.TextFields("product_assortment"),
			choice.Choices(
				choice.Choice{Key: "supplier", Label: "Поставщик"},
				choice.Choice{Key: "exhibition_hall", Label: "Выставочный зал"},
				choice.Choice{Key: "factory", Label: "Фабрика"},
				choice.Choice{Key: "salon", Label: "Салон"},
				choice.Choice{Key: "other", Label: "Другое"},
			),
			choice.Keywords("supplier", "поставк", "поставщик", "дистрибу", "оптов"),
			choice.Keywords("exhibition_hall", "выставочн", "шоурум", "showroom"),
			choice.Keywords("factory", "фабрик", "производств", "завод"),
			choice.Keywords("salon", "салон"),
		),
		vatAttribute(),
		magazineCardsAttribute(),
		choice.MustAttribute("execution_speed",
			choice.Combine(choice.CombineText),
			choice.Fields("speed_of_execution"), choice.MultiValued(),
			choice.TextFields("delivery_terms"),
			choice.Choices(
				choice.Choice{Key: "in_stock", Label: "В наличии"},
				choice.Choice{Key: "up_to_2_weeks", Label: "до 2х недель"},
				choice.Choice{Key: "up_to_1_month", Label: "до 1 месяца"},
				choice.Choice{Key: "up_to_3_months", Label: "до 3х месяцев"},
				choice.Choice{Key: choice.NotImportant, Label: "Не важно"},
			),
		),
		choice.MustAttribute("cooperation_terms",
			choice.Combine(choice.CombineText),
			choice.TextFields("cooperation_terms"),
		),
		businessFormAttribute(),
	}
	for _, f := range []string{
		"rough_materials", "finishing_materials", "upholstered_furniture",
		"cabinet_furniture", "technique", "decor",
	} {
		attrs = append(attrs, choice.MustAttribute(f, choice.Fields(f), choice.MultiValued(), choice.Derived()))
	}
	return choice.MustRegistry(entity.Supplier, []string{"full_name", "brand_name"}, attrs...)
}

func media() *choice.Registry {
	return choice.MustRegistry(entity.Media, []string{"full_name", "brand_name"},
		groupAttribute(),
		cityAttribute("representative_cities"),
		segmentAttribute(),
		businessFormAttribute(),
		vatAttribute(),
		choice.MustAttribute("activity",
			choice.Combine(choice.CombineText),
			choice.TextFields("activity_description"),
		),
	)
}
