package main

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/chuodata/usajili/core"
)

// createAdmin hashes the admin password and prints the env entries to set.
// The admin account lives in the config, not the database.
func (cli *commandLine) createAdmin(email, pwd string) error {
	email = core.CleanString(email, true /* lower */)

	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	prefix := strings.ToUpper(core.Conf.Env)
	fmt.Println("Add these to your environment (or config/.env." + strings.ToLower(core.Conf.Env) + "):")
	fmt.Printf("%s_ADMINEMAIL=%s\n", prefix, email)
	fmt.Printf("%s_ADMINPASSWORDHASH=%s\n", prefix, hash)
	return nil
}
