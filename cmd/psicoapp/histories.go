package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp/controllers"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/dates"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
)

func historiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "histories",
		Short: "Clinical history management",
	}
	cmd.AddCommand(historiesListCmd())
	cmd.AddCommand(historiesShowCmd())
	cmd.AddCommand(historiesCreateCmd())
	cmd.AddCommand(historiesEditCmd())
	cmd.AddCommand(historiesDeleteCmd())
	return cmd
}

func historiesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <patient-id>",
		Short: "List a patient's clinical histories, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}
			histories, err := app.ListHistoriesForPatient(args[0])
			if err != nil {
				return err
			}
			for _, h := range histories {
				printHistoryLine(h)
			}
			return nil
		},
	}
}

func historiesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <history-id>",
		Short: "Show one clinical history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			detail := controllers.NewHistoryDetailController(app, consoleNavigator{}, args[0])
			detail.Load()
			if err := detail.State().Err(); err != nil {
				return err
			}
			h, _ := detail.State().Data()

			fmt.Println("Historia clínica:", h.ID)
			fmt.Println("  Paciente:", h.PacienteID)
			fmt.Println("  Fecha:", dates.FormatForDisplay(h.FechaRegistro))
			fmt.Println("  Estado:", estadoText(h.Estado))
			fmt.Println("  Diagnóstico:", h.Diagnostico)
			if h.Tratamiento != "" {
				fmt.Println("  Tratamiento:", h.Tratamiento)
			}
			if h.Observaciones != "" {
				fmt.Println("  Observaciones:", h.Observaciones)
			}
			return nil
		},
	}
}

func historiesCreateCmd() *cobra.Command {
	var diagnostico, tratamiento, observaciones string

	cmd := &cobra.Command{
		Use:   "create <patient-id>",
		Short: "Create a clinical history for a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			ctrl := controllers.NewHistoryCreateController(app, consoleNavigator{}, args[0])
			ctrl.Form.Diagnostico = diagnostico
			ctrl.Form.Tratamiento = tratamiento
			ctrl.Form.Observaciones = observaciones

			saved, err := ctrl.Submit()
			if err != nil {
				printFieldErrors(ctrl.FieldErrors())
				return err
			}
			fmt.Println("historia creada:", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&diagnostico, "diagnostico", "", "diagnosis (5-500 characters)")
	cmd.Flags().StringVar(&tratamiento, "tratamiento", "", "treatment (optional)")
	cmd.Flags().StringVar(&observaciones, "observaciones", "", "observations (optional)")
	return cmd
}

func historiesEditCmd() *cobra.Command {
	var diagnostico, tratamiento, observaciones string
	var estado bool

	cmd := &cobra.Command{
		Use:   "edit <history-id>",
		Short: "Edit a clinical history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			ctrl := controllers.NewHistoryEditController(app, consoleNavigator{}, args[0])
			ctrl.Load()
			if err := ctrl.State().Err(); err != nil {
				return err
			}

			if cmd.Flags().Changed("diagnostico") {
				ctrl.Form.Diagnostico = diagnostico
			}
			if cmd.Flags().Changed("tratamiento") {
				ctrl.Form.Tratamiento = tratamiento
			}
			if cmd.Flags().Changed("observaciones") {
				ctrl.Form.Observaciones = observaciones
			}
			if cmd.Flags().Changed("estado") {
				ctrl.Form.Estado = estado
			}

			saved, err := ctrl.Submit()
			if err != nil {
				printFieldErrors(ctrl.FieldErrors())
				return err
			}
			fmt.Println("historia actualizada:", saved.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&diagnostico, "diagnostico", "", "diagnosis (5-500 characters)")
	cmd.Flags().StringVar(&tratamiento, "tratamiento", "", "treatment")
	cmd.Flags().StringVar(&observaciones, "observaciones", "", "observations")
	cmd.Flags().BoolVar(&estado, "estado", true, "true reactivates, false closes the record")
	return cmd
}

func historiesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <history-id>",
		Short: "Delete a clinical history record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a history is irreversible; pass --yes to confirm")
			}
			app, err := sessionApp()
			if err != nil {
				return err
			}
			if err := app.DeleteHistory(args[0]); err != nil {
				return err
			}
			fmt.Println("historia eliminada:", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

func printHistoryLine(h models.ClinicalHistory) {
	fmt.Printf("%s  %s  [%s]  %s\n", h.ID, dates.FormatForDisplay(h.FechaRegistro), estadoText(h.Estado), h.Diagnostico)
}

func estadoText(estado bool) string {
	if estado {
		return "activa"
	}
	return "cerrada"
}
