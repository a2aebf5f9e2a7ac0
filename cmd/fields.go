// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/dynfield/internal/fieldreg"
)

var (
	fieldName       string
	fieldLabel      string
	fieldOrderArg   string
	fieldType       string
	fieldObjectType string
	fieldConfigJSON string
	fieldValidID    int32
	fieldActorID    int64
	fieldAllValid   bool
	fieldNoReorder  bool
	orderCheckOnly  bool
)

func init() {
	fieldsCmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage dynamic field definitions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List field definitions in display order",
		RunE:  runListFields,
	}
	listCmd.Flags().BoolVar(&fieldAllValid, "all", false, "Include inactive definitions")
	listCmd.Flags().StringVar(&fieldObjectType, "object-type", "", "Restrict to one object type")
	fieldsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show one field definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGetField(args[0])
		},
	}
	fieldsCmd.AddCommand(getCmd)

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a field definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runAddField(args[0])
		},
	}
	addCmd.Flags().StringVar(&fieldLabel, "label", "", "Display label (required)")
	addCmd.Flags().StringVar(&fieldOrderArg, "order", "", "Display order, digits only (required)")
	addCmd.Flags().StringVar(&fieldType, "type", "", "Field type tag, e.g. Text or Dropdown (required)")
	addCmd.Flags().StringVar(&fieldObjectType, "object-type", "", "Object type the field attaches to (required)")
	addCmd.Flags().StringVar(&fieldConfigJSON, "config", "{}", "Type-specific configuration as JSON")
	addCmd.Flags().Int32Var(&fieldValidID, "valid-id", 1, "Validity status code")
	addCmd.Flags().Int64Var(&fieldActorID, "actor", 1, "Acting user id")
	_ = addCmd.MarkFlagRequired("label")
	_ = addCmd.MarkFlagRequired("order")
	_ = addCmd.MarkFlagRequired("type")
	_ = addCmd.MarkFlagRequired("object-type")
	fieldsCmd.AddCommand(addCmd)

	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite a field definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runUpdateField(args[0])
		},
	}
	updateCmd.Flags().StringVar(&fieldName, "name", "", "Field name (required)")
	updateCmd.Flags().StringVar(&fieldLabel, "label", "", "Display label (required)")
	updateCmd.Flags().StringVar(&fieldOrderArg, "order", "", "Display order, digits only (required)")
	updateCmd.Flags().StringVar(&fieldType, "type", "", "Field type tag, e.g. Text or Dropdown (required)")
	updateCmd.Flags().StringVar(&fieldObjectType, "object-type", "", "Object type the field attaches to (required)")
	updateCmd.Flags().StringVar(&fieldConfigJSON, "config", "{}", "Type-specific configuration as JSON")
	updateCmd.Flags().Int32Var(&fieldValidID, "valid-id", 1, "Validity status code")
	updateCmd.Flags().Int64Var(&fieldActorID, "actor", 1, "Acting user id")
	updateCmd.Flags().BoolVar(&fieldNoReorder, "no-reorder", false, "Skip the order cascade after the write")
	_ = updateCmd.MarkFlagRequired("name")
	_ = updateCmd.MarkFlagRequired("label")
	_ = updateCmd.MarkFlagRequired("order")
	_ = updateCmd.MarkFlagRequired("type")
	_ = updateCmd.MarkFlagRequired("object-type")
	fieldsCmd.AddCommand(updateCmd)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a field definition and all of its stored values",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDeleteField(args[0])
		},
	}
	deleteCmd.Flags().Int64Var(&fieldActorID, "actor", 1, "Acting user id")
	fieldsCmd.AddCommand(deleteCmd)

	orderResetCmd := &cobra.Command{
		Use:   "order-reset",
		Short: "Renumber all definitions to a contiguous sequence",
		RunE:  runOrderReset,
	}
	orderResetCmd.Flags().BoolVar(&orderCheckOnly, "check", false, "Only report whether the sequence is contiguous")
	orderResetCmd.Flags().Int64Var(&fieldActorID, "actor", 1, "Acting user id")
	fieldsCmd.AddCommand(orderResetCmd)

	rootCmd.AddCommand(fieldsCmd)
}

// parseFieldOrder applies the strict syntactic check: digits only, no
// sign, no spaces. Stricter than a range check on purpose.
func parseFieldOrder(s string) (int32, error) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("field order %q is not a non-negative integer", s)
	}
	return int32(n), nil
}

func runListFields(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	params := fieldreg.ListParams{ObjectType: fieldObjectType}
	if fieldAllValid {
		all := false
		params.Valid = &all
	}

	defs, err := registry.ListGet(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to list field definitions: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tORDER\tNAME\tLABEL\tTYPE\tOBJECT\tVALID")
	for _, def := range defs {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%d\n",
			def.ID, def.FieldOrder, def.Name, def.Label, def.FieldType, def.ObjectType, def.ValidID)
	}
	return w.Flush()
}

func runGetField(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	def, err := registry.GetByName(ctx, name)
	if err != nil {
		return err
	}

	fmt.Printf("ID:          %d\n", def.ID)
	fmt.Printf("Name:        %s\n", def.Name)
	fmt.Printf("Label:       %s\n", def.Label)
	fmt.Printf("Order:       %d\n", def.FieldOrder)
	fmt.Printf("Type:        %s\n", def.FieldType)
	fmt.Printf("ObjectType:  %s\n", def.ObjectType)
	fmt.Printf("ValidID:     %d\n", def.ValidID)
	fmt.Printf("Changed:     %s by %d\n", def.ChangeTime.Format(time.RFC3339), def.ChangeBy)
	fmt.Printf("Config:      %v\n", def.Config)
	return nil
}

func runAddField(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	order, err := parseFieldOrder(fieldOrderArg)
	if err != nil {
		return err
	}
	cfg, err := decodeConfigJSON(fieldConfigJSON)
	if err != nil {
		return err
	}

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	id, err := registry.Add(ctx, fieldreg.AddParams{
		Name:       name,
		Label:      fieldLabel,
		FieldOrder: order,
		FieldType:  fieldType,
		ObjectType: fieldObjectType,
		Config:     cfg,
		ValidID:    fieldValidID,
		ActorID:    fieldActorID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created field definition %d (%s)\n", id, name)
	return nil
}

func runUpdateField(idArg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("field id %q is not an integer", idArg)
	}
	order, err := parseFieldOrder(fieldOrderArg)
	if err != nil {
		return err
	}
	cfg, err := decodeConfigJSON(fieldConfigJSON)
	if err != nil {
		return err
	}

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	params := fieldreg.UpdateParams{
		ID:         id,
		Name:       fieldName,
		Label:      fieldLabel,
		FieldOrder: order,
		FieldType:  fieldType,
		ObjectType: fieldObjectType,
		Config:     cfg,
		ValidID:    fieldValidID,
		ActorID:    fieldActorID,
	}
	if fieldNoReorder {
		reorder := false
		params.Reorder = &reorder
	}

	if err := registry.Update(ctx, params); err != nil {
		return err
	}

	fmt.Printf("Updated field definition %d (%s)\n", id, fieldName)
	return nil
}

func runDeleteField(idArg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("field id %q is not an integer", idArg)
	}

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	if err := registry.Delete(ctx, id, fieldActorID); err != nil {
		return err
	}

	fmt.Printf("Deleted field definition %d\n", id)
	return nil
}

func runOrderReset(_ *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	registry, store, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	defer registry.Close()

	if orderCheckOnly {
		ok, err := registry.OrderCheck(ctx)
		if err != nil {
			return err
		}
		if ok {
			fmt.Println("Field order is contiguous")
			return nil
		}
		fmt.Println("Field order has gaps or collisions; run without --check to repair")
		return nil
	}

	if err := registry.OrderReset(ctx, fieldActorID); err != nil {
		return err
	}
	fmt.Println("Field order reset")
	return nil
}
