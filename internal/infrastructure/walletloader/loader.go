package walletloader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"
)

// addressSeparators matches any run of whitespace and/or commas.
var addressSeparators = regexp.MustCompile(`[\s,]+`)

// ParseAddresses splits raw user input into address tokens.
// Tokens are trimmed and empty ones dropped; order and duplicates are kept.
// No format validation happens here, the remote API rejects bad addresses.
func ParseAddresses(raw string) []entity.Wallet {
	parts := addressSeparators.Split(raw, -1)
	wallets := make([]entity.Wallet, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		wallets = append(wallets, entity.Wallet{Address: p})
	}
	return wallets
}

// WalletFileLoader implements port.WalletProvider over a file or any reader.
// Lines starting with '#' are comments; everything else goes through ParseAddresses.
type WalletFileLoader struct {
	filePath   string
	reader     io.Reader
	loggerInfo func(msg string, args ...any)
}

// NewWalletFileLoader creates a loader reading addresses from filePath.
func NewWalletFileLoader(filePath string, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	return &WalletFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// NewWalletReaderLoader creates a loader reading addresses from r (e.g. stdin).
// name only labels log records.
func NewWalletReaderLoader(name string, r io.Reader, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	return &WalletFileLoader{
		filePath:   name,
		reader:     r,
		loggerInfo: loggerInfo,
	}
}

// GetWallets reads every address from the configured source.
func (l *WalletFileLoader) GetWallets() ([]entity.Wallet, error) {
	r := l.reader
	if r == nil {
		file, err := os.Open(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
		}
		defer file.Close()
		r = file
	}

	var wallets []entity.Wallet
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wallets = append(wallets, ParseAddresses(line)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet source %s: %w", l.filePath, err)
	}

	if l.loggerInfo != nil {
		l.loggerInfo("Wallets loaded successfully", "count", len(wallets), "source", l.filePath)
	}
	return wallets, nil
}
