package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("key", "value").
		From("kv_entries").
		Where(Eq("namespace", "default"), In("key", "currentWeek", "playerPicks")).
		OrderBy("key").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT key, value FROM kv_entries WHERE namespace = $1 AND key IN ($2, $3) ORDER BY key LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "default" || args[2] != "playerPicks" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyIn(t *testing.T) {
	query, args, err := Select("key").From("kv_entries").Where(In("key")).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT key FROM kv_entries WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("kv_entries").
		Columns("namespace", "key", "value").
		Values("default", "currentWeek", "3").
		Suffix("ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO kv_entries (namespace, key, value) VALUES ($1, $2, $3) ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "currentWeek" || args[2] != "3" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	if _, _, err := InsertInto("kv_entries").Columns("key", "value").Values("k").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestDeleteBuilder_QuestionPlaceholders(t *testing.T) {
	query, args, err := DeleteFrom("kv_entries").
		Where(Eq("namespace", "default"), Eq("key", "currentWeek")).
		PlaceholderFormat(Question).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM kv_entries WHERE namespace = ? AND key = ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("kv_entries").ToSQL(); err == nil {
		t.Fatalf("expected unscoped delete to be rejected")
	}
}
