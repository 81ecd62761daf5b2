package telegram

import "sync"

// solvedEntry is the last problem/solution pair per chat, kept in memory only
// so the "explain" button has something to work on.
type solvedEntry struct {
	Problem  string
	Solution string
}

var lastSolved sync.Map // chatID -> *solvedEntry

func rememberSolved(chatID int64, e *solvedEntry) { lastSolved.Store(chatID, e) }

func recallSolved(chatID int64) *solvedEntry {
	if v, ok := lastSolved.Load(chatID); ok {
		if e, _ := v.(*solvedEntry); e != nil {
			return e
		}
	}
	return nil
}
