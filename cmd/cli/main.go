package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

// bcryptGenerate is a seam for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "gobank-cli",
		Short: "GoBank CLI tool",
		Long:  `A command line interface for interacting with the GoBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GoBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("GOBANK_TOKEN"), "Bearer token (defaults to GOBANK_TOKEN)")

	rootCmd.AddCommand(
		signupCmd(),
		loginCmd(),
		accountCmd(),
		transferCmd(),
		transactionsCmd(),
		hashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func signupCmd() *cobra.Command {
	var email, name, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new user",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/auth/signup", map[string]string{
				"email":     email,
				"full_name": name,
				"password":  password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and print a token",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
				"email":    email,
				"password": password,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var displayName, deposit string
	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Open a new account",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodPost, "/api/v1/accounts", map[string]string{
				"display_name":    displayName,
				"initial_deposit": deposit,
			})
		},
	}
	openCmd.Flags().StringVar(&displayName, "name", "", "Account display name")
	openCmd.Flags().StringVar(&deposit, "deposit", "0", "Initial deposit")
	_ = openCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/accounts", nil)
		},
	}

	cmd.AddCommand(openCmd, listCmd)

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to, amount, description, idempotencyKey string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer money between accounts",
		Run: func(cmd *cobra.Command, args []string) {
			doRequestWithHeaders(http.MethodPost, "/api/v1/accounts/transfer", map[string]string{
				"from_account_number": from,
				"to_account_number":   to,
				"amount":              amount,
				"description":         description,
			}, map[string]string{"Idempotency-Key": idempotencyKey})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source account number")
	cmd.Flags().StringVar(&to, "to", "", "Destination account number")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&description, "description", "", "Transfer description")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transactionsCmd() *cobra.Command {
	var account string
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions for an account",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/accounts/transactions?account_number=%s&limit=%d&offset=%d",
				account, limit, offset)
			doRequest(http.MethodGet, path, nil)
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Account number")
	cmd.Flags().IntVar(&limit, "limit", 50, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func doRequest(method, path string, body map[string]string) {
	doRequestWithHeaders(method, path, body, nil)
}

func doRequestWithHeaders(method, path string, body, headers map[string]string) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(raw), 500))
		os.Exit(1)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		fmt.Println(string(raw))
		return
	}

	printJSON(parsed)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to format response: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
