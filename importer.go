package hedgebook

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/PaesslerAG/jsonpath"
	"github.com/andrewstohl/hedgebook/kv"
)

// this file imports wallet activity from the discovery provider's JSON
// document (a history list plus token and project dictionaries). The
// provider format is navigated with jsonpath so the mapping stays explicit
// and survives extra fields we do not care about.

// Activity is a decoded provider document: the raw transactions and the
// metadata dictionaries they reference.
type Activity struct {
	Transactions []Transaction `json:"transactions"`
	Tokens       TokenDict     `json:"tokens"`
	Projects     ProjectDict   `json:"projects"`
}

// jget extracts a jsonpath from the decoded document. A missing path is not
// an error; it returns nil.
func jget(doc any, path string) any {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil
	}
	return v
}

// jstring coerces a decoded JSON value to string, tolerating nil.
func jstring(v any) string {
	s, _ := v.(string)
	return s
}

// jfloat coerces a decoded JSON value to float64, tolerating nil.
func jfloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

// importTransfers maps a provider transfer list.
func importTransfers(v any) []TokenTransfer {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var transfers []TokenTransfer
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		transfers = append(transfers, TokenTransfer{
			TokenID: jstring(m["token_id"]),
			Amount:  jfloat(m["amount"]),
		})
	}
	return transfers
}

// ImportActivity reads a provider activity document from r and maps it into
// transactions plus the token and project dictionaries. Entries with no
// chain or hash are skipped; a malformed document is an error, a missing
// section is simply empty.
func ImportActivity(r io.Reader) (*Activity, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse activity document: %w", err)
	}

	activity := &Activity{
		Tokens:   make(TokenDict),
		Projects: make(ProjectDict),
	}

	if list, ok := jget(doc, "$.history_list").([]any); ok {
		for _, item := range list {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			tx := Transaction{
				Chain:    jstring(m["chain"]),
				Hash:     jstring(m["id"]),
				TimeAt:   int64(jfloat(m["time_at"])),
				Project:  jstring(m["project_id"]),
				Category: jstring(m["cate_id"]),
				Name:     jstring(jget(m, "$.tx.name")),
				Sends:    importTransfers(m["sends"]),
				Receives: importTransfers(m["receives"]),
			}
			if tx.Chain == "" || tx.Hash == "" {
				continue
			}
			activity.Transactions = append(activity.Transactions, tx)
		}
	}

	if dict, ok := jget(doc, "$.token_dict").(map[string]any); ok {
		for id, v := range dict {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			symbol := jstring(m["symbol"])
			if symbol == "" {
				symbol = jstring(m["optimized_symbol"])
			}
			activity.Tokens[id] = TokenInfo{Symbol: symbol, Price: jfloat(m["price"])}
		}
	}

	if dict, ok := jget(doc, "$.project_dict").(map[string]any); ok {
		for id, v := range dict {
			m, ok := v.(map[string]any)
			if !ok {
				continue
			}
			activity.Projects[id] = ProjectInfo{Name: jstring(m["name"])}
		}
	}

	return activity, nil
}

// activityKey is the storage key for a wallet's imported activity, kept
// next to the book document.
func activityKey(wallet string) string {
	return bookKey(wallet) + ":activity"
}

// SaveActivity persists an imported activity document for a wallet so later
// sessions can run inference without re-importing. Transactions in the
// stored document are merged with the new ones by key; the newest wins.
func SaveActivity(store kv.Store, wallet string, a *Activity) error {
	prev, err := LoadActivity(store, wallet)
	if err == nil {
		index := TxIndex(prev.Transactions)
		for _, tx := range a.Transactions {
			index[tx.Key()] = tx
		}
		merged := make([]Transaction, 0, len(index))
		for _, tx := range index {
			merged = append(merged, tx)
		}
		sort.Slice(merged, func(i, j int) bool {
			if merged[i].TimeAt != merged[j].TimeAt {
				return merged[i].TimeAt < merged[j].TimeAt
			}
			return merged[i].Key() < merged[j].Key()
		})
		a = &Activity{Transactions: merged, Tokens: a.Tokens, Projects: a.Projects}
		for id, info := range prev.Tokens {
			if _, ok := a.Tokens[id]; !ok {
				a.Tokens[id] = info
			}
		}
		for id, info := range prev.Projects {
			if _, ok := a.Projects[id]; !ok {
				a.Projects[id] = info
			}
		}
	}

	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("cannot encode activity for %q: %w", wallet, err)
	}
	if err := store.Set(activityKey(wallet), string(raw)); err != nil {
		return fmt.Errorf("cannot persist activity for %q: %w", wallet, err)
	}
	return nil
}

// LoadActivity reads the stored activity for a wallet. A missing document
// is an error here, unlike Load: inference without transactions is
// meaningless and the caller should be told to import first.
func LoadActivity(store kv.Store, wallet string) (*Activity, error) {
	raw, ok := store.Get(activityKey(wallet))
	if !ok {
		return nil, fmt.Errorf("no activity stored for %q: run an import first", wallet)
	}
	var a Activity
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("cannot decode stored activity for %q: %w", wallet, err)
	}
	return &a, nil
}

// TxIndex indexes transactions by their overlay key.
func TxIndex(txs []Transaction) map[string]Transaction {
	index := make(map[string]Transaction, len(txs))
	for _, tx := range txs {
		index[tx.Key()] = tx
	}
	return index
}
