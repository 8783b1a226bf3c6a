package domain

const (
	defaultLimit = 20
	maxLimit     = 50
)

func normalizePagination(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}

	if limit <= 0 {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	return offset, limit
}
