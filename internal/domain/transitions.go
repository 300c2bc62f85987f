package domain

// TransitionTable таблица допустимых переходов статусов: (текущий, запрошенный) -> разрешено
type TransitionTable map[BookingStatus]map[BookingStatus]bool

// PermissiveTransitions разрешает переход из любого статуса в любой
func PermissiveTransitions() TransitionTable {
	t := make(TransitionTable, len(AllStatuses))
	for _, from := range AllStatuses {
		t[from] = make(map[BookingStatus]bool, len(AllStatuses))
		for _, to := range AllStatuses {
			t[from][to] = true
		}
	}
	return t
}

// StrictTransitions основной поток:
// pending -> confirmed | cancelled, confirmed -> cancelled | completed | no_show.
// Повтор текущего статуса разрешён (например, чтобы сменить мастера)
func StrictTransitions() TransitionTable {
	t := TransitionTable{
		StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed: {StatusCancelled: true, StatusCompleted: true, StatusNoShow: true},
		StatusCancelled: {},
		StatusCompleted: {},
		StatusNoShow:    {},
	}
	for _, s := range AllStatuses {
		t[s][s] = true
	}
	return t
}

// Allows возвращает true, если переход from -> to разрешён
func (t TransitionTable) Allows(from, to BookingStatus) bool {
	return t[from][to]
}
