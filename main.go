package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/petstore-qa/petstore-contract-tests/framework"
	"github.com/petstore-qa/petstore-contract-tests/framework/harness"
	"github.com/petstore-qa/petstore-contract-tests/petstoretests"
	"github.com/petstore-qa/petstore-contract-tests/report"
	"github.com/petstore-qa/petstore-contract-tests/servicedef"
)

const statusQueryTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args, os.Stderr) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = framework.PrefixedLogger(log.New(os.Stdout, "", log.LstdFlags), "[service] ")
	}

	client := harness.NewServiceClient(params.serviceURL, nil, mainDebugLogger)

	if !params.noWait {
		if err := client.AwaitServiceReachable(servicedef.StoreInventoryPath, statusQueryTimeout, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Pet Store service is not reachable: %s\n", err)
			os.Exit(1)
		}
	}

	fmt.Println()
	printFilterDescription(os.Stdout, params.filters)

	fmt.Printf("Running test suite against %s\n", client.BaseURL())

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := petstoretests.RunTestSuite(client, params.filters.AsFilter, testLogger)

	fmt.Println()
	printResults(os.Stdout, results, &params, filepath.Base(os.Args[0]))

	if params.reportDir != "" {
		if err := report.WriteAllureResults(params.reportDir, results); err != nil {
			fmt.Fprintf(os.Stderr, "Could not write Allure results: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Allure results written to %s\n", params.reportDir)
	}
	if params.summaryPath != "" {
		if err := report.WriteSummary(params.summaryPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Could not write summary: %s\n", err)
			os.Exit(1)
		}
	}

	if !results.OK() {
		os.Exit(1)
	}
}
