// Package model defines the idea submission entity shared by the wizard, the
// renderers and the submission client. FormData mirrors the JSON body the
// backend expects (`fullName`, `email`, `company`, `category`, `ideaTitle`,
// `description`, `problemsSolved`, `urgency`, `betaTesting`, `privacyConsent`)
// and Patch describes partial updates that only touch the fields they name.
// The enumerations (Category, Tag, Urgency, BetaTesting) are closed
// vocabularies; human labels live in the catalog package.
package model
