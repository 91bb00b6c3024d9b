package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SNS-EUGENE/s-live-dashboard/internal/dto"
	"github.com/SNS-EUGENE/s-live-dashboard/internal/model"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "콘솔 관리자 계정",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	req := dto.CreateAdminRequest{}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "관리자 계정 생성 (비밀번호는 SLIVE_ADMIN_PASSWORD 로도 전달 가능)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("SLIVE_ADMIN_PASSWORD")
			}
			if req.Password == "" {
				return errors.New("--password 또는 SLIVE_ADMIN_PASSWORD 가 필요합니다")
			}

			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			user, err := e.svc.Auth.CreateAdmin(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "생성됨: %s (%s, %s)\n", user.Email, user.Role, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "로그인 이메일")
	cmd.Flags().StringVar(&req.Name, "name", "", "이름")
	cmd.Flags().StringVar(&req.Password, "password", "", "비밀번호 (8자 이상)")
	cmd.Flags().StringVar(&req.Role, "role", model.RoleAdmin, "admin|viewer")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
