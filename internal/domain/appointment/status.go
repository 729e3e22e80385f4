package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusScheduled: {StatusCancelled, StatusCompleted},
	StatusCancelled: {}, // terminal
	StatusCompleted: {}, // terminal
}

func IsValidStatus(st Status) bool {
	_, ok := transitions[st]
	return ok
}

func IsTerminal(st Status) bool {
	return st == StatusCancelled || st == StatusCompleted
}

// CanTransition consulta a tabela de transições, sem olhar papel.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanChangeStatus aplica o gate de papel antes da tabela: cliente só
// cancela agendamento ainda agendado; admin faz qualquer transição válida.
func CanChangeStatus(role string, from, to Status) bool {
	if role != "admin" {
		return from == StatusScheduled && to == StatusCancelled
	}
	return CanTransition(from, to)
}

// CanDelete: excluir só em estado terminal. Cliente apenas cancelados;
// admin também finalizados. Agendamento ativo se cancela, não se exclui.
func CanDelete(role string, st Status) bool {
	if st == StatusCancelled {
		return true
	}
	return st == StatusCompleted && role == "admin"
}

func InitialStatus() Status {
	return StatusScheduled
}
