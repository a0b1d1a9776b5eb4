package template

import "github.com/porbotenet-wq/facadeflow/internal/domain"

// WorkBreakdownItem is one line of the work schedule (ГПР) catalog.
type WorkBreakdownItem struct {
	Section    string
	Subsection string
	SortOrder  int
	WorkName   string
	Unit       string
	WorkType   domain.WorkType
}

// GPRTemplate is the work schedule catalog in sort order. Items tagged BOTH
// apply to every object regardless of selection.
var GPRTemplate = []WorkBreakdownItem{
	// НВФ: Подготовительные работы
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 1, WorkName: "Геодезическая съёмка фасада", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 2, WorkName: "Разработка проекта производства работ (ППР)", Unit: "компл.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 3, WorkName: "Вынос осей и разметка на фасаде", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 4, WorkName: "Монтаж средств подмащивания (леса, подъёмники)", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 5, WorkName: "Подготовка монтажного основания", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 6, WorkName: "Очистка стен от загрязнений", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 7, WorkName: "Демонтаж старой отделки (при необходимости)", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Подготовительные работы", SortOrder: 8, WorkName: "Локальный ремонт монтажного основания", Unit: "м2", WorkType: domain.WorkTypeNVF},
	// НВФ: Монтаж подконструкции
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 9, WorkName: "Разметка под установку кронштейнов", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 10, WorkName: "Испытание анкеров на вырыв", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 11, WorkName: "Бурение отверстий под анкеры", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 12, WorkName: "Установка несущих кронштейнов", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 13, WorkName: "Установка опорных кронштейнов", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 14, WorkName: "Установка паронитовых прокладок", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 15, WorkName: "Монтаж вертикальных направляющих профилей", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 16, WorkName: "Монтаж горизонтальных направляющих профилей", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 17, WorkName: "Монтаж противопожарных отсечек", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Монтаж подконструкции", SortOrder: 18, WorkName: "Устройство термокомпенсационных швов", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	// НВФ: Утепление
	{Section: "НВФ", Subsection: "Утепление", SortOrder: 19, WorkName: "Монтаж утеплителя (первый слой)", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Утепление", SortOrder: 20, WorkName: "Монтаж утеплителя (второй слой)", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Утепление", SortOrder: 21, WorkName: "Крепление утеплителя тарельчатыми дюбелями", Unit: "шт.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Утепление", SortOrder: 22, WorkName: "Монтаж ветро-влагозащитной мембраны", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Утепление", SortOrder: 23, WorkName: "Устройство пароизоляции", Unit: "м2", WorkType: domain.WorkTypeNVF},
	// НВФ: Облицовка
	{Section: "НВФ", Subsection: "Облицовка", SortOrder: 24, WorkName: "Облицовка керамогранитными плитами", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Облицовка", SortOrder: 25, WorkName: "Облицовка композитными панелями (АКП)", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Облицовка", SortOrder: 26, WorkName: "Облицовка фиброцементными плитами", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Облицовка", SortOrder: 27, WorkName: "Облицовка металлокассетами", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Облицовка", SortOrder: 28, WorkName: "Облицовка линеарными панелями", Unit: "м2", WorkType: domain.WorkTypeNVF},
	// НВФ: Примыкания и завершение
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 29, WorkName: "Монтаж оконных откосов", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 30, WorkName: "Монтаж дверных откосов", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 31, WorkName: "Монтаж отливов", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 32, WorkName: "Монтаж парапетных крышек", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 33, WorkName: "Герметизация швов и стыков", Unit: "м.п.", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 34, WorkName: "Демонтаж средств подмащивания", Unit: "м2", WorkType: domain.WorkTypeNVF},
	{Section: "НВФ", Subsection: "Примыкания и завершение", SortOrder: 35, WorkName: "Уборка строительного мусора", Unit: "компл.", WorkType: domain.WorkTypeNVF},
	// СПК: Подготовительные работы
	{Section: "СПК", Subsection: "Подготовительные работы", SortOrder: 36, WorkName: "Геодезическая съёмка фасада", Unit: "м2", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Подготовительные работы", SortOrder: 37, WorkName: "Разработка рабочей документации", Unit: "компл.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Подготовительные работы", SortOrder: 38, WorkName: "Вынос осей под СПК + разметка на фасаде", Unit: "м2", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Подготовительные работы", SortOrder: 39, WorkName: "Монтаж средств подмащивания", Unit: "м2", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Подготовительные работы", SortOrder: 40, WorkName: "Подготовка проёмов и монтажного основания", Unit: "м2", WorkType: domain.WorkTypeSPK},
	// СПК: Монтаж несущего каркаса
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 41, WorkName: "Установка закладных элементов", Unit: "шт.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 42, WorkName: "Монтаж кронштейнов крепления СПК", Unit: "шт.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 43, WorkName: "Монтаж вертикальных стоек (импостов)", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 44, WorkName: "Монтаж горизонтальных ригелей", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 45, WorkName: "Установка термомостов", Unit: "шт.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Монтаж несущего каркаса", SortOrder: 46, WorkName: "Монтаж противопожарных коробов", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	// СПК: Заполнение и остекление
	{Section: "СПК", Subsection: "Заполнение и остекление", SortOrder: 47, WorkName: "Монтаж утепления непрозрачной зоны", Unit: "м2", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Заполнение и остекление", SortOrder: 48, WorkName: "Монтаж стеклопакетов (прозрачная зона)", Unit: "м2", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Заполнение и остекление", SortOrder: 49, WorkName: "Установка штапиков", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Заполнение и остекление", SortOrder: 50, WorkName: "Установка уплотнителей EPDM", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Заполнение и остекление", SortOrder: 51, WorkName: "Монтаж декоративных крышек", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	// СПК: Герметизация и примыкания
	{Section: "СПК", Subsection: "Герметизация и примыкания", SortOrder: 52, WorkName: "Герметизация структурного шва", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Герметизация и примыкания", SortOrder: 53, WorkName: "Герметизация наружных швов", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Герметизация и примыкания", SortOrder: 54, WorkName: "Установка примыканий к стенам", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Герметизация и примыкания", SortOrder: 55, WorkName: "Монтаж отливов", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Герметизация и примыкания", SortOrder: 56, WorkName: "Монтаж откосов", Unit: "м.п.", WorkType: domain.WorkTypeSPK},
	// СПК: Окна и двери
	{Section: "СПК", Subsection: "Окна и двери", SortOrder: 57, WorkName: "Монтаж алюминиевых окон", Unit: "шт.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Окна и двери", SortOrder: 58, WorkName: "Монтаж алюминиевых дверей", Unit: "шт.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Окна и двери", SortOrder: 59, WorkName: "Установка фурнитуры", Unit: "компл.", WorkType: domain.WorkTypeSPK},
	{Section: "СПК", Subsection: "Окна и двери", SortOrder: 60, WorkName: "Регулировка открывающихся элементов", Unit: "шт.", WorkType: domain.WorkTypeSPK},
}
