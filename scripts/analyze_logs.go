package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

// LogStats summarises one day of payment service logs
type LogStats struct {
	TotalErrors          int
	Warnings             int
	OrdersCreated        int
	GatewayFailures      int
	PaymentsRecorded     int
	SignatureFailures    int
	UnmatchedPayments    int
	PaymentConflicts     int
	AdminLogins          int
	AdminLoginFailures   int
	RateLimited          int
	RejectedTransitions  int
	ConfirmationsSent    int
	ConfirmationFailures int
	ErrorPatterns        map[string]int
}

// messageRegex captures the text after the "LEVEL: date time file.go:NN: " logger prefix
var messageRegex = regexp.MustCompile(`^[A-Z]+: \S+ \S+ [^:\s]+:\d+: (.*)$`)

func newLogStats() *LogStats {
	return &LogStats{ErrorPatterns: make(map[string]int)}
}

func main() {
	logDir := flag.String("dir", "./logs", "directory holding the service log files")
	day := flag.String("date", time.Now().Format("2006-01-02"), "log date to analyse (YYYY-MM-DD)")
	flag.Parse()

	stats := newLogStats()

	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("error-%s.log", *day)), stats.analyzeErrorLog); err != nil {
		fmt.Println(err)
	}
	if err := analyzeFile(filepath.Join(*logDir, fmt.Sprintf("info-%s.log", *day)), stats.analyzeInfoLog); err != nil {
		fmt.Println(err)
	}

	printReport(os.Stdout, stats, *day)
}

func analyzeFile(path string, analyze func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening log file %s: %v", path, err)
	}
	defer file.Close()
	return analyze(file)
}

func (s *LogStats) analyzeErrorLog(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "WARN: ") {
			s.Warnings++
			if strings.Contains(line, "has no local order") {
				s.UnmatchedPayments++
			}
			continue
		}
		if !strings.HasPrefix(line, "ERROR: ") {
			// continuation of a stack trace
			continue
		}
		s.TotalErrors++

		switch {
		case strings.Contains(line, "Payment verification failed"):
			s.SignatureFailures++
		case strings.Contains(line, "Razorpay order creation failed"):
			s.GatewayFailures++
		case strings.Contains(line, "not recorded: status"):
			s.PaymentConflicts++
		case strings.Contains(line, "Rate limit exceeded"):
			s.RateLimited++
		case strings.Contains(line, "Invalid password for admin"), strings.Contains(line, "Admin not found for email"):
			s.AdminLoginFailures++
		case strings.Contains(line, "Rejected status change"):
			s.RejectedTransitions++
		case strings.Contains(line, "Failed to send payment confirmation"):
			s.ConfirmationFailures++
		}

		s.ErrorPatterns[errorPattern(line)]++
	}
	return scanner.Err()
}

func (s *LogStats) analyzeInfoLog(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "Created Razorpay order"):
			s.OrdersCreated++
		case strings.Contains(line, "marked paid with payment"):
			s.PaymentsRecorded++
		case strings.Contains(line, "Admin login successful"):
			s.AdminLogins++
		case strings.Contains(line, "Payment confirmation sent"):
			s.ConfirmationsSent++
		}
	}
	return scanner.Err()
}

// errorPattern reduces a log line to its message with ids and numbers masked
func errorPattern(line string) string {
	msg := line
	if m := messageRegex.FindStringSubmatch(line); m != nil {
		msg = m[1]
	}
	if i := strings.Index(msg, ": "); i > 0 {
		msg = msg[:i]
	}
	return idRegex.ReplaceAllString(msg, "<id>")
}

var idRegex = regexp.MustCompile(`\b(order|pay|rcpt)_[A-Za-z0-9]+\b|\b\d+\b`)

func printReport(w io.Writer, stats *LogStats, day string) {
	fmt.Fprintln(w, "\n=== Payment Log Report ===")
	fmt.Fprintln(w, "Log date:", day)

	fmt.Fprintln(w, "\n1. Checkout:")
	fmt.Fprintf(w, "   Orders Created: %d\n", stats.OrdersCreated)
	fmt.Fprintf(w, "   Gateway Failures: %d\n", stats.GatewayFailures)
	fmt.Fprintf(w, "   Payments Recorded: %d\n", stats.PaymentsRecorded)
	fmt.Fprintf(w, "   Signature Failures: %d\n", stats.SignatureFailures)
	fmt.Fprintf(w, "   Verified Without Local Order: %d\n", stats.UnmatchedPayments)
	fmt.Fprintf(w, "   Payment Conflicts: %d\n", stats.PaymentConflicts)
	fmt.Fprintf(w, "   Confirmations Sent/Failed: %d/%d\n", stats.ConfirmationsSent, stats.ConfirmationFailures)

	fmt.Fprintln(w, "\n2. Dashboard:")
	fmt.Fprintf(w, "   Admin Logins: %d\n", stats.AdminLogins)
	fmt.Fprintf(w, "   Failed Admin Logins: %d\n", stats.AdminLoginFailures)
	fmt.Fprintf(w, "   Rejected Status Changes: %d\n", stats.RejectedTransitions)

	fmt.Fprintln(w, "\n3. Errors:")
	fmt.Fprintf(w, "   Total Errors: %d\n", stats.TotalErrors)
	fmt.Fprintf(w, "   Warnings: %d\n", stats.Warnings)
	fmt.Fprintf(w, "   Rate Limited Requests: %d\n", stats.RateLimited)

	fmt.Fprintln(w, "\n4. Most Common Errors:")
	printTopErrors(w, stats.ErrorPatterns, 5)
}

type errorCount struct {
	pattern string
	count   int
}

func topErrors(patterns map[string]int, limit int) []errorCount {
	var list []errorCount
	for p, count := range patterns {
		list = append(list, errorCount{p, count})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return list[i].pattern < list[j].pattern
	})
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

func printTopErrors(w io.Writer, patterns map[string]int, limit int) {
	for _, e := range topErrors(patterns, limit) {
		fmt.Fprintf(w, "   %s: %d occurrences\n", e.pattern, e.count)
	}
}
