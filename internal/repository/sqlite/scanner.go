package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanViewState scans a single view state row
func ScanViewState(scanner Scanner) (*ViewStateRow, error) {
	row := &ViewStateRow{}
	var updatedAt string

	err := scanner.Scan(
		&row.Profile,
		&row.SelectedUser,
		&row.Candidate,
		&row.LastError,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if updatedAt != "" {
		parsed, err := ParseTimeFromDB(updatedAt)
		if err != nil {
			return nil, err
		}
		row.UpdatedAt = parsed
	}

	return row, nil
}

// ScanUser scans a single known user row
func ScanUser(scanner Scanner) (*UserRow, error) {
	row := &UserRow{}
	if err := scanner.Scan(&row.Position, &row.Name); err != nil {
		return nil, err
	}
	return row, nil
}

// ScanUsers scans multiple known user rows
func ScanUsers(rows Rows) ([]*UserRow, error) {
	return scanAll(rows, ScanUser)
}

// ScanTask scans a single mirrored task row
func ScanTask(scanner Scanner) (*TaskRow, error) {
	row := &TaskRow{}
	var isDone int
	if err := scanner.Scan(&row.Position, &row.TaskID, &row.Label, &isDone); err != nil {
		return nil, err
	}
	row.IsDone = isDone != 0
	return row, nil
}

// ScanTasks scans multiple mirrored task rows
func ScanTasks(rows Rows) ([]*TaskRow, error) {
	return scanAll(rows, ScanTask)
}

func scanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
