//go:build !sqlite
// +build !sqlite

package ledger

import (
	"errors"

	"festbot/pkg/logx"
)

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	_ = cfg
	_ = log
	return nil, errors.New("sqlite ledger not built: build with -tags sqlite")
}
