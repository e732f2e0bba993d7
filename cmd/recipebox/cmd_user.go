package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/recipebox/app/services"
)

var superuser services.CreateUserInput

// recipebox user:createsuperuser
var createSuperuserCmd = &cobra.Command{
	Use:   "user:createsuperuser",
	Short: "Create a staff account with full privileges",
	RunE: func(cmd *cobra.Command, args []string) error {
		if superuser.Password == "" {
			pw, err := promptPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			superuser.Password = pw
		}

		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		u, err := a.kernel.Users().CreateSuperuser(cmd.Context(), superuser)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Superuser %s created (id %d).\n", u.Email, u.ID)
		return nil
	},
}

var deleteEmail string

// recipebox user:delete
var deleteUserCmd = &cobra.Command{
	Use:   "user:delete",
	Short: "Delete an account with its tags, ingredients, recipes and images",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.kernel.Users().DeleteByEmail(cmd.Context(), deleteEmail); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted.\n", deleteEmail)
		return nil
	},
}

func init() {
	f := createSuperuserCmd.Flags()
	f.StringVar(&superuser.Email, "email", "", "Account email")
	f.StringVar(&superuser.Name, "name", "", "Display name")
	f.StringVar(&superuser.Password, "password", "", "Password (min 5 characters); prompted for when omitted")
	_ = createSuperuserCmd.MarkFlagRequired("email")

	deleteUserCmd.Flags().StringVar(&deleteEmail, "email", "", "Account email")
	_ = deleteUserCmd.MarkFlagRequired("email")
}
