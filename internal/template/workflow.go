package template

// WorkflowStep is one action in the multi-department process.
type WorkflowStep struct {
	ID        string
	Substep   string
	Action    string
	Initiator string
	Receiver  string
	Deadline  string // free text, see ResolveDeadline
	Document  string
	Trigger   string
	Note      string
}

// WorkflowStage groups the steps owned by one phase of the project.
type WorkflowStage struct {
	ID    string
	Name  string
	Icon  string
	Color string
	Steps []WorkflowStep
}

// WorkflowStages is the canonical process, in execution order. Materialized
// task numbers follow stage order, then step order.
var WorkflowStages = []WorkflowStage{
	{
		ID: "contract", Name: "Договорной отдел", Icon: "📄", Color: "#4f8ef7",
		Steps: []WorkflowStep{
			{ID: "1.1", Substep: "Подписание договора", Action: "Подписать договор подряда с заказчиком",
				Initiator: "Договорной отдел", Receiver: "Руководитель проекта", Deadline: "Дата подписания",
				Document: "Договор подряда", Trigger: "contract_signed"},
			{ID: "1.2", Substep: "Передача договора в работу", Action: "Передать подписанный договор и смету руководителю проекта",
				Initiator: "Договорной отдел", Receiver: "Руководитель проекта", Deadline: "Сутки с момента подписания",
				Document: "Договор, смета"},
			{ID: "1.3", Substep: "Авансовый счёт", Action: "Выставить счёт на аванс заказчику",
				Initiator: "Договорной отдел", Receiver: "Заказчик", Deadline: "2 дня",
				Document: "Счёт на оплату", Note: "Сумма аванса по условиям договора"},
		},
	},
	{
		ID: "launch", Name: "Запуск проекта", Icon: "🚀", Color: "#36d9a0",
		Steps: []WorkflowStep{
			{ID: "2.1", Substep: "Назначение команды", Action: "Назначить ответственных по отделам",
				Initiator: "Руководитель проекта", Receiver: "Проектный отдел", Deadline: "1 день",
				Document: "Приказ о назначении", Trigger: "team_assigned"},
			{ID: "2.2", Substep: "Стартовое совещание", Action: "Провести стартовое совещание с отделами",
				Initiator: "Руководитель проекта", Receiver: "Производственный отдел", Deadline: "В течение суток",
				Document: "Протокол совещания"},
			{ID: "2.3", Substep: "Выезд на объект", Action: "Организовать выезд на объект и обмерные работы",
				Initiator: "Руководитель проекта", Receiver: "Монтажное подразделение", Deadline: "2-3 дня",
				Document: "Акт обследования"},
		},
	},
	{
		ID: "design", Name: "Проектирование", Icon: "📐", Color: "#f7a84f",
		Steps: []WorkflowStep{
			{ID: "3.1", Substep: "Рабочая документация", Action: "Разработать рабочую документацию фасада",
				Initiator: "Проектный отдел", Receiver: "Руководитель проекта", Deadline: "По графику проектирования",
				Document: "Комплект РД"},
			{ID: "3.2", Substep: "Согласование РД", Action: "Согласовать рабочую документацию с заказчиком",
				Initiator: "Проектный отдел", Receiver: "Заказчик", Deadline: "3 дня",
				Document: "Лист согласования", Trigger: "design_approved"},
			{ID: "3.3", Substep: "Спецификации", Action: "Выпустить спецификации материалов для снабжения",
				Initiator: "Проектный отдел", Receiver: "Отдел снабжения", Deadline: "Двое суток",
				Document: "Спецификация материалов"},
		},
	},
	{
		ID: "supply", Name: "Снабжение", Icon: "📦", Color: "#f74f7a",
		Steps: []WorkflowStep{
			{ID: "4.1", Substep: "Запрос предложений", Action: "Запросить коммерческие предложения у поставщиков",
				Initiator: "Отдел снабжения", Receiver: "Руководитель проекта", Deadline: "3 дня",
				Document: "Сравнительная таблица КП"},
			{ID: "4.2", Substep: "Заказ материалов", Action: "Разместить заказ на материалы и комплектующие",
				Initiator: "Отдел снабжения", Receiver: "Производственный отдел", Deadline: "После согласования КП",
				Document: "Заявка поставщику", Trigger: "materials_ordered"},
			{ID: "4.3", Substep: "Уведомление о поставке", Action: "Уведомить монтажное подразделение о поставке",
				Initiator: "Отдел снабжения", Receiver: "Монтажное подразделение", Deadline: "За сутки",
				Document: "Уведомление о поставке"},
		},
	},
	{
		ID: "production", Name: "Производство", Icon: "🏭", Color: "#b44ff7",
		Steps: []WorkflowStep{
			{ID: "5.1", Substep: "Запуск в производство", Action: "Запустить изготовление кронштейнов и модулей",
				Initiator: "Производственный отдел", Receiver: "Отдел снабжения", Deadline: "1 день",
				Document: "Производственное задание"},
			{ID: "5.2", Substep: "Контроль изготовления", Action: "Проверить изготовленные изделия на соответствие РД",
				Initiator: "Производственный отдел", Receiver: "ПТО", Deadline: "По мере изготовления",
				Document: "Акт входного контроля"},
			{ID: "5.3", Substep: "Отгрузка", Action: "Согласовать отгрузку изделий на объект",
				Initiator: "Производственный отдел", Receiver: "Монтажное подразделение", Deadline: "Заблаговременно",
				Document: "Товарная накладная", Trigger: "shipment_ready"},
		},
	},
	{
		ID: "installation", Name: "Монтаж", Icon: "🏗️", Color: "#ef4444",
		Steps: []WorkflowStep{
			{ID: "6.1", Substep: "Приёмка фронта работ", Action: "Принять фронт работ от генподрядчика",
				Initiator: "Монтажное подразделение", Receiver: "Руководитель проекта", Deadline: "2 дня",
				Document: "Акт приёмки фронта работ"},
			{ID: "6.2", Substep: "Заявка на технику", Action: "Подать заявку на подъёмную технику",
				Initiator: "Монтажное подразделение", Receiver: "Отдел снабжения", Deadline: "За 7 дней",
				Document: "Заявка на технику"},
			{ID: "6.3", Substep: "Монтаж фасада", Action: "Выполнить монтаж фасадной системы",
				Initiator: "Монтажное подразделение", Receiver: "ПТО", Deadline: "По ГПР",
				Document: "Журнал производства работ", Trigger: "daily_report",
				Note: "Ежедневный план-факт заполняется бригадиром"},
		},
	},
	{
		ID: "pto", Name: "ПТО", Icon: "📋", Color: "#38bdf8",
		Steps: []WorkflowStep{
			{ID: "7.1", Substep: "Исполнительная документация", Action: "Подготовить исполнительную документацию",
				Initiator: "ПТО", Receiver: "Руководитель проекта", Deadline: "3 дня",
				Document: "Исполнительные схемы, акты скрытых работ"},
			{ID: "7.2", Substep: "Сдача КС-2/КС-3", Action: "Сформировать акты выполненных работ",
				Initiator: "ПТО", Receiver: "Договорной отдел", Deadline: "За двое суток",
				Document: "КС-2, КС-3", Trigger: "acts_ready"},
		},
	},
	{
		ID: "quality", Name: "Контроль качества", Icon: "✅", Color: "#10b981",
		Steps: []WorkflowStep{
			{ID: "8.1", Substep: "Проверка качества", Action: "Провести проверку качества смонтированных участков",
				Initiator: "ПТО", Receiver: "Монтажное подразделение", Deadline: "1 день",
				Document: "Акт проверки качества"},
			{ID: "8.2", Substep: "Устранение замечаний", Action: "Устранить выявленные замечания",
				Initiator: "Монтажное подразделение", Receiver: "ПТО", Deadline: "2-3 дня",
				Document: "Реестр замечаний"},
			{ID: "8.3", Substep: "Сдача объекта", Action: "Сдать объект заказчику",
				Initiator: "Руководитель проекта", Receiver: "Заказчик", Deadline: "По окончании работ",
				Document: "Акт сдачи-приёмки", Trigger: "object_completed"},
		},
	},
}

// StepCount returns the number of steps across all stages.
func StepCount(stages []WorkflowStage) int {
	n := 0
	for _, s := range stages {
		n += len(s.Steps)
	}
	return n
}

// StageColor returns the palette color of the stage called name.
func StageColor(name string) (string, bool) {
	for _, s := range WorkflowStages {
		if s.Name == name {
			return s.Color, true
		}
	}
	return "", false
}

// CanExecuteStep reports whether a user acting as roleName may execute step.
// Administrators may execute every step.
func CanExecuteStep(roleName string, step WorkflowStep) bool {
	if roleName == "ADMIN" {
		return true
	}
	return roleName != "" && step.Initiator == roleName
}

// FilterStagesForRole keeps only the steps roleName can execute and drops
// stages left empty.
func FilterStagesForRole(stages []WorkflowStage, roleName string) []WorkflowStage {
	var out []WorkflowStage
	for _, stage := range stages {
		var steps []WorkflowStep
		for _, step := range stage.Steps {
			if CanExecuteStep(roleName, step) {
				steps = append(steps, step)
			}
		}
		if len(steps) > 0 {
			stage.Steps = steps
			out = append(out, stage)
		}
	}
	return out
}
