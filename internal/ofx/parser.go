// Package ofx turns OFX/QFX bank and credit card statements into expenses.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/Veraticus/spent/internal/model"
	"github.com/aclindsa/ofxgo"
)

var (
	// Banks emit <SEVERITY>Info</SEVERITY>; ofxgo only accepts upper case.
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// SGML exports sometimes drop the ">" of a bare opening tag.
	unclosedTagPattern = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// "03/14 " style posting dates at the start of a description.
	leadingDatePattern = regexp.MustCompile(`^\d{2}/\d{2}\s+`)
)

// Card-network boilerplate stripped from the front of descriptions.
var notePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"DEBIT PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
}

// Descriptions that say nothing about where the money went.
var genericNames = []string{"DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE"}

// Statement is what one OFX file holds, reduced to expenses.
type Statement struct {
	Accounts []string
	Expenses []model.Expense
	// Credits counts deposits, refunds and card payments, which are skipped.
	Credits int
}

// Parser reads OFX files, filing every expense under one category.
type Parser struct {
	category string
}

// NewParser returns a parser for the given category.
func NewParser(category string) *Parser {
	return &Parser{category: category}
}

// account is one statement in a response: bank and card statements carry
// the same transaction list under different wrappers.
type account struct {
	id   string
	list *ofxgo.TransactionList
}

// ParseFile reads a whole OFX or QFX document.
func (p *Parser) ParseFile(ctx context.Context, r io.Reader) (*Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	resp, err := ofxgo.ParseResponse(strings.NewReader(normalize(string(raw))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	accounts := statements(resp)
	stmt := &Statement{}
	for _, acct := range accounts {
		p.collect(stmt, acct)
	}

	slog.Info("Parsed OFX file",
		"statements", len(accounts),
		"expenses", len(stmt.Expenses),
		"credits_skipped", stmt.Credits)
	return stmt, nil
}

func normalize(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	return unclosedTagPattern.ReplaceAllString(content, "$1>")
}

func statements(resp *ofxgo.Response) []account {
	var out []account
	for _, msg := range resp.Bank {
		if s, ok := msg.(*ofxgo.StatementResponse); ok {
			out = append(out, account{id: string(s.BankAcctFrom.AcctID), list: s.BankTranList})
		}
	}
	for _, msg := range resp.CreditCard {
		if s, ok := msg.(*ofxgo.CCStatementResponse); ok {
			out = append(out, account{id: string(s.CCAcctFrom.AcctID), list: s.BankTranList})
		}
	}
	return out
}

func (p *Parser) collect(stmt *Statement, acct account) {
	if acct.id != "" && !slices.Contains(stmt.Accounts, acct.id) {
		stmt.Accounts = append(stmt.Accounts, acct.id)
	}
	if acct.list == nil {
		return
	}

	for _, tx := range acct.list.Transactions {
		// OFX signs debits negative.
		amount, _ := tx.TrnAmt.Float64()
		if amount >= 0 {
			stmt.Credits++
			continue
		}

		expense := model.Expense{
			Amount:   -amount,
			Category: p.category,
			Note:     merchant(tx),
			Date:     model.DateOf(tx.DtPosted.Time),
		}
		if tx.FiTID != "" {
			expense.ID = ExpenseID(acct.id, string(tx.FiTID))
		}
		stmt.Expenses = append(stmt.Expenses, expense)
	}
}

// ExpenseID is the stable id of a statement line. FITIDs are only unique
// within an account, so the account is part of the id.
func ExpenseID(accountID, fitID string) string {
	if accountID == "" {
		return "ofx-" + fitID
	}
	return "ofx-" + accountID + "-" + fitID
}

// merchant picks the most readable description of a transaction: PAYEE,
// then NAME, then MEMO when NAME is generic.
func merchant(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && slices.Contains(genericNames, strings.ToUpper(name)) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	upper := strings.ToUpper(name)
	for _, prefix := range notePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	return leadingDatePattern.ReplaceAllString(name, "")
}
