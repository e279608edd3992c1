package services

import (
	"fmt"

	"github.com/sbilibin2017/timekeeper/internal/mailer"
	"github.com/sbilibin2017/timekeeper/internal/models"
)

func registrationMail(user *models.User, baseURL, token string) mailer.Message {
	return mailer.Message{
		To:      user.Username,
		Subject: "Login Instructions for your Time Management Account",
		Body: "You are receiving this because your account has been created.\n\n" +
			"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
			fmt.Sprintf("%s/validate/%s\n\n", baseURL, token) +
			"If you did not request this, please ignore this email.\n",
	}
}

func resetRequestMail(user *models.User, baseURL, token string) mailer.Message {
	return mailer.Message{
		To:      user.Username,
		Subject: "Time Management Password Reset",
		Body: "You are receiving this because you (or someone else) have requested the reset of the password for your account.\n\n" +
			"Please click on the following link, or paste this into your browser to complete the process:\n\n" +
			fmt.Sprintf("%s/reset/%s\n\n", baseURL, token) +
			"If you did not request this, please ignore this email and your password will remain unchanged.\n",
	}
}

func passwordChangedMail(user *models.User) mailer.Message {
	return mailer.Message{
		To:      user.Username,
		Subject: "Your password has been changed",
		Body: "Hello,\n\n" +
			fmt.Sprintf("This is a confirmation that the password for your account %s has just been changed.\n", user.Username),
	}
}

func accountVerifiedMail(user *models.User) mailer.Message {
	return mailer.Message{
		To:      user.Username,
		Subject: "Your account has been verified",
		Body: fmt.Sprintf("Hello %s,\n\n", user.FullName()) +
			fmt.Sprintf("This is a confirmation that your account %s has just been verified.\n", user.Username),
	}
}
