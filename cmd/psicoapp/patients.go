package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/psicoapp/psicoapp-connector-go/psicoapp/controllers"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/dates"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/models"
	"github.com/psicoapp/psicoapp-connector-go/psicoapp/validate"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient management",
	}
	cmd.AddCommand(patientsListCmd())
	cmd.AddCommand(patientsShowCmd())
	cmd.AddCommand(patientsCreateCmd())
	cmd.AddCommand(patientsEditCmd())
	cmd.AddCommand(patientsDeleteCmd())
	return cmd
}

func patientsListCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List patients, optionally filtered",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			list := controllers.NewPatientListController(app, consoleNavigator{})
			list.SetQuery(query)
			list.Load()
			if err := list.State().Err(); err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDNI\tPACIENTE\tEDAD\tTELÉFONO")
			for _, p := range list.Visible() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.DNI, p.FullName(), p.Age(), p.Telefono)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive filter over name, surname and DNI")
	return cmd
}

func patientsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <patient-id>",
		Short: "Show one patient and their clinical histories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			detail := controllers.NewPatientDetailController(app, app, consoleNavigator{}, args[0])
			detail.Load()
			if err := detail.State().Err(); err != nil {
				return err
			}
			data, _ := detail.State().Data()
			printPatient(data.Patient)

			fmt.Println()
			fmt.Println("Historias clínicas:")
			if len(data.Histories) == 0 {
				fmt.Println("  (ninguna)")
				return nil
			}
			for _, h := range data.Histories {
				state := "activa"
				if !h.Estado {
					state = "cerrada"
				}
				fmt.Printf("  %s  %s  [%s]  %s\n", h.ID, dates.FormatForDisplay(h.FechaRegistro), state, h.Diagnostico)
			}
			return nil
		},
	}
}

func patientsCreateCmd() *cobra.Command {
	var form patientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			ctrl := controllers.NewPatientCreateController(app, consoleNavigator{})
			form.apply(ctrl)
			saved, err := ctrl.Submit()
			if err != nil {
				printFieldErrors(ctrl.FieldErrors())
				return err
			}
			fmt.Println("paciente creado:", saved.ID)
			return nil
		},
	}

	form.register(cmd)
	return cmd
}

func patientsEditCmd() *cobra.Command {
	var form patientFlags

	cmd := &cobra.Command{
		Use:   "edit <patient-id>",
		Short: "Edit a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := sessionApp()
			if err != nil {
				return err
			}

			ctrl := controllers.NewPatientEditController(app, consoleNavigator{}, args[0])
			ctrl.Load()
			if err := ctrl.State().Err(); err != nil {
				return err
			}

			form.applyChanged(cmd, ctrl)
			saved, err := ctrl.Submit()
			if err != nil {
				printFieldErrors(ctrl.FieldErrors())
				return err
			}
			fmt.Println("paciente actualizado:", saved.ID)
			return nil
		},
	}

	form.register(cmd)
	return cmd
}

func patientsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <patient-id>",
		Short: "Delete a patient",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("deleting a patient is irreversible; pass --yes to confirm")
			}
			app, err := sessionApp()
			if err != nil {
				return err
			}
			if err := app.DeletePatient(args[0]); err != nil {
				return err
			}
			fmt.Println("paciente eliminado:", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}

// patientFlags mirrors the patient form fields as CLI flags.
type patientFlags struct {
	dni, nombre, apellido, fecha, sexo, telefono, correo string
}

func (f *patientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.dni, "dni", "", "national ID number (8 digits)")
	cmd.Flags().StringVar(&f.nombre, "nombre", "", "given name")
	cmd.Flags().StringVar(&f.apellido, "apellido", "", "family name")
	cmd.Flags().StringVar(&f.fecha, "fecha-nacimiento", "", "birth date DD/MM/YYYY")
	cmd.Flags().StringVar(&f.sexo, "sexo", "", "masculino, femenino or otro")
	cmd.Flags().StringVar(&f.telefono, "telefono", "", "phone number (9 digits)")
	cmd.Flags().StringVar(&f.correo, "correo", "", "email (optional)")
}

func (f *patientFlags) apply(ctrl *controllers.PatientFormController) {
	ctrl.Form.DNI = f.dni
	ctrl.Form.Nombre = f.nombre
	ctrl.Form.Apellido = f.apellido
	ctrl.Form.FechaNacimiento = f.fecha
	ctrl.Form.Sexo = f.sexo
	ctrl.Form.Telefono = f.telefono
	ctrl.Form.Correo = f.correo
}

// applyChanged only overwrites the form fields whose flags were set, so an
// edit keeps the loaded values for everything else.
func (f *patientFlags) applyChanged(cmd *cobra.Command, ctrl *controllers.PatientFormController) {
	if cmd.Flags().Changed("dni") {
		ctrl.Form.DNI = f.dni
	}
	if cmd.Flags().Changed("nombre") {
		ctrl.Form.Nombre = f.nombre
	}
	if cmd.Flags().Changed("apellido") {
		ctrl.Form.Apellido = f.apellido
	}
	if cmd.Flags().Changed("fecha-nacimiento") {
		ctrl.Form.FechaNacimiento = f.fecha
	}
	if cmd.Flags().Changed("sexo") {
		ctrl.Form.Sexo = f.sexo
	}
	if cmd.Flags().Changed("telefono") {
		ctrl.Form.Telefono = f.telefono
	}
	if cmd.Flags().Changed("correo") {
		ctrl.Form.Correo = f.correo
	}
}

func printPatient(p models.Patient) {
	fmt.Println("Paciente:", p.FullName())
	fmt.Println("  DNI:", p.DNI)
	fmt.Println("  Nacimiento:", dates.FormatForDisplay(p.FechaNacimiento))
	fmt.Printf("  Edad: %d años\n", p.Age())
	fmt.Println("  Sexo:", p.Sexo)
	fmt.Println("  Teléfono:", p.Telefono)
	if p.Correo != "" {
		fmt.Println("  Correo:", p.Correo)
	}
}

func printFieldErrors(errs []validate.FieldError) {
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", e.Field, e.Message)
	}
}
