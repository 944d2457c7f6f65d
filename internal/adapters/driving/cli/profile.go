package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/servilink/servilink-cli/internal/core/domain"
)

var (
	profileUserID  int64
	profileName    string
	profileEmail   string
	profilePhone   string
	profileLoc     string
	profileBio     string
	profilePicture string

	skillsAll bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit a profile",
	Long:  `Show your profile, or another user's with --user.`,
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Edit your profile",
	Long:  `Edit your profile. Only the flags you pass are changed.`,
	Args:  cobra.NoArgs,
	RunE:  runProfileUpdate,
}

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Manage the skills you offer",
}

var skillsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your skills, or every skill with --all",
	Args:  cobra.NoArgs,
	RunE:  runSkillsList,
}

var skillsAddCmd = &cobra.Command{
	Use:   "add <skill-id>...",
	Short: "Add one or more skills to your profile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSkillsAdd,
}

var skillsRemoveCmd = &cobra.Command{
	Use:   "remove <skill-id>",
	Short: "Remove a skill from your profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkillsRemove,
}

func init() {
	for _, c := range []*cobra.Command{profileCmd, profileShowCmd} {
		c.Flags().Int64Var(&profileUserID, "user", 0, "user ID (defaults to you)")
	}
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profileEmail, "email", "", "email")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "phone number")
	profileUpdateCmd.Flags().StringVar(&profileLoc, "location", "", "city or area")
	profileUpdateCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")
	profileUpdateCmd.Flags().StringVar(&profilePicture, "picture", "", "profile picture URL")

	skillsListCmd.Flags().BoolVar(&skillsAll, "all", false, "list the whole skill catalogue")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	skillsCmd.AddCommand(skillsListCmd)
	skillsCmd.AddCommand(skillsAddCmd)
	skillsCmd.AddCommand(skillsRemoveCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(skillsCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return fmt.Errorf("profile: %w", errNotConfigured)
	}
	id := profileUserID
	if id == 0 {
		me, err := currentUser()
		if err != nil {
			return err
		}
		id = me.ID
	}

	ctx := cmd.Context()
	user, err := profileService.Get(ctx, id)
	if err != nil {
		return err
	}
	printUser(cmd, user)

	if !user.IsVendor() {
		return nil
	}
	skills, err := profileService.Skills(ctx, id)
	if err != nil {
		cmd.Printf("  Skills:   unavailable (%s)\n", domain.UserMessage(err))
		return nil
	}
	cmd.Printf("  Skills:   %s\n", skillNames(skills))
	return nil
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return fmt.Errorf("profile: %w", errNotConfigured)
	}

	var update domain.ProfileUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		update.Name = &profileName
	}
	if flags.Changed("email") {
		update.Email = &profileEmail
	}
	if flags.Changed("phone") {
		update.Phone = &profilePhone
	}
	if flags.Changed("location") {
		update.Location = &profileLoc
	}
	if flags.Changed("bio") {
		update.Bio = &profileBio
	}
	if flags.Changed("picture") {
		update.ProfilePictureURL = &profilePicture
	}
	if update.IsEmpty() {
		cmd.Println("Nothing to update.")
		return nil
	}

	user, err := profileService.Update(cmd.Context(), update)
	if err != nil {
		return err
	}
	cmd.Println("Profile updated.")
	printUser(cmd, user)
	return nil
}

func runSkillsList(cmd *cobra.Command, _ []string) error {
	if profileService == nil {
		return fmt.Errorf("profile: %w", errNotConfigured)
	}

	var (
		skills []domain.Skill
		err    error
	)
	if skillsAll {
		skills, err = profileService.AllSkills(cmd.Context())
	} else {
		me, uerr := currentUser()
		if uerr != nil {
			return uerr
		}
		skills, err = profileService.Skills(cmd.Context(), me.ID)
	}
	if err != nil {
		return err
	}

	if len(skills) == 0 {
		cmd.Println("No skills.")
		return nil
	}
	for _, s := range skills {
		cmd.Printf("  [%d] %s\n", s.ID, s.Name)
		if s.Description != "" {
			cmd.Printf("      %s\n", s.Description)
		}
	}
	return nil
}

func runSkillsAdd(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return fmt.Errorf("profile: %w", errNotConfigured)
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	if len(ids) == 1 {
		if err := profileService.AddSkill(cmd.Context(), ids[0]); err != nil {
			return err
		}
		cmd.Printf("Added skill %d.\n", ids[0])
		return nil
	}
	if err := profileService.AssignSkills(cmd.Context(), ids); err != nil {
		return err
	}
	cmd.Printf("Added %d skills.\n", len(ids))
	return nil
}

func runSkillsRemove(cmd *cobra.Command, args []string) error {
	if profileService == nil {
		return fmt.Errorf("profile: %w", errNotConfigured)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := profileService.RemoveSkill(cmd.Context(), id); err != nil {
		return err
	}
	cmd.Printf("Removed skill %d.\n", id)
	return nil
}

func skillNames(skills []domain.Skill) string {
	if len(skills) == 0 {
		return "none"
	}
	out := ""
	for i, s := range skills {
		if i > 0 {
			out += ", "
		}
		out += s.Name
	}
	return out
}
