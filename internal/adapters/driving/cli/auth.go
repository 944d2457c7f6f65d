package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var (
	loginEmail    string
	loginPassword string

	registerName     string
	registerEmail    string
	registerPhone    string
	registerLocation string
	registerRole     string
	registerPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to ServiLink",
	Long: `Log in with your email and password.

Missing values are prompted for. The session is stored locally and shared by
the CLI and the TUI until you run 'servilink logout'.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a ServiLink account",
	Long: `Create an account as a vendor (offers services) or a contractor (hires them).

Name, email, password and role are required; missing values are prompted for.
You are logged in once the account is created. Vendors continue with
'servilink onboarding' to declare skills and post their first services.`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "email")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerLocation, "location", "", "city or area")
	registerCmd.Flags().StringVar(&registerRole, "role", "", "vendor or contractor")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "password (prompted when omitted)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(registerCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth: %w", errNotConfigured)
	}

	reader := newReader(cmd.InOrStdin())
	email := loginEmail
	if email == "" {
		email = prompt(cmd, reader, "Email: ")
	}
	password := loginPassword
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword(cmd, reader)
	}

	user, err := authService.SignIn(cmd.Context(), email, password)
	if err != nil {
		return err
	}
	cmd.Printf("Logged in as %s (%s).\n", user.Name, user.Role)
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth: %w", errNotConfigured)
	}
	if err := authService.SignOut(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return fmt.Errorf("session: %w", errNotConfigured)
	}
	state := sessionService.Current()
	if !state.IsAuthenticated() {
		cmd.Println("Not logged in.")
		return nil
	}
	printUser(cmd, state.User())
	return nil
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return fmt.Errorf("auth: %w", errNotConfigured)
	}

	reader := newReader(cmd.InOrStdin())
	reg := domain.Registration{
		Name:     registerName,
		Email:    registerEmail,
		Phone:    registerPhone,
		Location: registerLocation,
		Password: registerPassword,
	}
	if reg.Name == "" {
		reg.Name = prompt(cmd, reader, "Name: ")
	}
	if reg.Email == "" {
		reg.Email = prompt(cmd, reader, "Email: ")
	}
	role := registerRole
	if role == "" {
		role = prompt(cmd, reader, "Role (vendor/contractor): ")
	}
	reg.Role = domain.ParseRole(role)
	if reg.Password == "" {
		cmd.Print("Password: ")
		reg.Password = readPassword(cmd, reader)
	}

	user, err := authService.Register(cmd.Context(), reg)
	if err != nil {
		return err
	}
	cmd.Printf("Account created for %s.\n", user.Email)

	if _, err := authService.SignIn(cmd.Context(), reg.Email, reg.Password); err != nil {
		cmd.Printf("Could not log in automatically: %s\n", domain.UserMessage(err))
		return nil
	}
	cmd.Printf("Logged in as %s.\n", user.Name)
	if user.IsVendor() {
		cmd.Println("Next: run 'servilink onboarding' to add your skills and first services.")
	}
	return nil
}

func printUser(cmd *cobra.Command, u *domain.User) {
	cmd.Printf("%s <%s>\n", u.Name, u.Email)
	cmd.Printf("  ID:       %d\n", u.ID)
	cmd.Printf("  Role:     %s\n", u.Role)
	if u.Phone != "" {
		cmd.Printf("  Phone:    %s\n", u.Phone)
	}
	if u.Location != "" {
		cmd.Printf("  Location: %s\n", u.Location)
	}
	if u.Bio != "" {
		cmd.Printf("  Bio:      %s\n", u.Bio)
	}
}
